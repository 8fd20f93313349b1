package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// StaticAgent is a static user agent string.
type StaticAgent string

// String implementation.
func (sa StaticAgent) String() string {
	return string(sa)
}

// DefaultFetcher is the default fetcher to use.
//
// It uses the default client and lets the
// client decide the user agent.
var DefaultFetcher = &Fetcher{
	Client: DefaultClient,
}

// Fetch fetches a page from URL.
func Fetch(ctx context.Context, rawurl string) (*Page, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("quotes: parse url %q - %w", rawurl, err)
	}
	return DefaultFetcher.Fetch(ctx, u)
}

// Fetcher implements a page fetcher.
type Fetcher struct {
	// Client is the client to use.
	//
	// If nil, quotes.DefaultClient is used.
	Client Client

	// UserAgent is the user agent to use.
	//
	// If nil, no User-Agent header is set
	// and the client decides.
	UserAgent fmt.Stringer
}

// Fetch fetches a page by URL.
//
// The method makes exactly one GET request, it does not
// retry and does not look at the status code, any response
// is turned into a page. The status is kept in Page.Status.
//
// Only transport errors are returned, the page's body must
// be scanned or closed so the connection can be re-used.
func (f *Fetcher) Fetch(ctx context.Context, url *URL) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("quotes: new request - %w", err)
	}

	if ua := f.UserAgent; ua != nil {
		req.Header.Set("User-Agent", ua.String())
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("quotes: %s %q - %w", req.Method, req.URL, err)
	}

	page := NewPage(resp.Request.URL, resp.Body)
	page.Status = resp.StatusCode
	return page, nil
}

// Client returns the client to use.
func (f *Fetcher) client() Client {
	if f.Client != nil {
		return f.Client
	}
	return DefaultClient
}

// UserAgent returns the user agent string, or an empty string.
func (f *Fetcher) userAgent() string {
	if f.UserAgent != nil {
		return f.UserAgent.String()
	}
	return ""
}
