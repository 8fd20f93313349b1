// Package quotes scrapes quote listings into CSV.
//
// A crawl fetches a fixed range of listing pages, extracts
// every quote block from each page and returns the records in
// page order. The records are written as CSV with a header row
// derived from Fields.
//
//   crawler, err := quotes.NewCrawler(quotes.CrawlerConfig{
//     Pages: 10,
//   })
//   if err != nil {
//     return err
//   }
//
//   all, err := crawler.Run(ctx)
//   if err != nil {
//     return err
//   }
//
//   return quotes.WriteFile("quotes.csv", all)
//
package quotes

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// URL represents a parsed URL.
type URL = url.URL

// Fields are the record's field names.
//
// The order is the order of Quote's fields and the
// order of columns in the CSV output.
var Fields = []string{"text", "author", "tags"}

// Quote represents a single quote record.
type Quote struct {
	Text   string
	Author string
	Tags   []string
}

// Record returns the quote as a CSV row, in Fields order.
//
// Tags are rendered into a single cell with FormatTags.
func (q Quote) Record() []string {
	return []string{
		q.Text,
		q.Author,
		FormatTags(q.Tags),
	}
}

// Client represents an HTTP client.
//
// A client is used by the fetcher to turn URLs into pages, it is responsible
// for setting cookies, following HTTP redirects and managing TCP connections.
//
// An error is returned if caused by client policy (such as CheckRedirect), or
// failure to speak HTTP (such as a network connectivity problem). A non-2xx
// status code doesn't cause an error.
type Client interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient is the default client to use.
//
// It is configured the same way as the `http.DefaultClient`
// with a tuned transport and no overall timeout, a hung
// connection blocks until the request's context is canceled.
var DefaultClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}
