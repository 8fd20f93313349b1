// Package quotestest implements test helpers.
//
// Usage:
//
//   func TestCrawl(t *testing.T) {
//     var assert = require.New(t)
//     var url = quotestest.Serve(t,
//       quotestest.Listing(quotestest.Block("A quote.", "Author A", "wisdom")),
//       quotestest.Listing(),
//     )
//
//     crawler, err := quotes.NewCrawler(quotes.CrawlerConfig{
//       BaseURL: url,
//       Pages:   2,
//     })
//     ...
//   }
//
package quotestest

import (
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// Hangup is a page that makes the server close the
// connection without responding.
const Hangup = "\x00hangup"

// Block returns the markup of a single quote block
// laid out the way the quotes site lays it out.
func Block(text, author string, tags ...string) string {
	var b strings.Builder

	b.WriteString(`
    <div class="quote" itemscope itemtype="http://schema.org/CreativeWork">
        <span class="text" itemprop="text">` + html.EscapeString(text) + `</span>
        <span>by <small class="author" itemprop="author">` + html.EscapeString(author) + `</small>
        <a href="/author/x">(about)</a>
        </span>
        <div class="tags">
            Tags:
            <meta class="keywords" itemprop="keywords" content="` + html.EscapeString(strings.Join(tags, ",")) + `" /> 
`)

	for _, tag := range tags {
		b.WriteString(`            <a class="tag" href="/tag/` + html.EscapeString(tag) + `/page/1/">` + html.EscapeString(tag) + "</a>\n")
	}

	b.WriteString(`        </div>
    </div>
`)

	return b.String()
}

// Listing returns the markup of a listing page with blocks.
func Listing(blocks ...string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Quotes to Scrape</title></head>
<body>
<div class="container">
  <div class="row">
    <div class="col-md-8">
` + strings.Join(blocks, "") + `
    <nav><ul class="pager"><li class="next"><a href="/page/2/">Next</a></li></ul></nav>
    </div>
  </div>
</div>
</body>
</html>
`
}

// Serve serves pages as a listing site and returns its base URL.
//
// pages[0] is served at `/`, pages[n-1] at `/page/n/`, any
// other path responds with 404 and an empty listing.
func Serve(t testing.TB, pages ...string) string {
	t.Helper()

	srv := httptest.NewServer(Handler(pages...))
	t.Cleanup(func() {
		srv.Close()
	})

	return srv.URL + "/"
}

// Handler returns the handler used by Serve.
func Handler(pages ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, ok := number(r.URL.Path)
		if !ok || n > len(pages) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(Listing()))
			return
		}

		if page := pages[n-1]; page == Hangup {
			hangup(w)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(pages[n-1]))
	})
}

// Number returns the page number of path.
func number(path string) (int, bool) {
	if path == "/" || path == "" {
		return 1, true
	}

	if !strings.HasPrefix(path, "/page/") || !strings.HasSuffix(path, "/") {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path, "/page/"), "/"))
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}

// Hangup closes the underlying connection.
func hangup(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("quotestest: response writer cannot hijack")
	}

	conn, _, err := hj.Hijack()
	if err != nil {
		panic("quotestest: hijack - " + err.Error())
	}

	conn.Close()
}
