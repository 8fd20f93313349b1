package quotes

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"sync"

	"github.com/yields/quotes/internal/scan"
	"golang.org/x/net/html"
)

var (
	// Scanner is shared by all pages, it caches
	// scan funcs per destination type.
	scanner = scan.NewScanner()
)

// Page represents a fetched page.
type Page struct {
	// URL is the page's URL, after redirects.
	URL *url.URL

	// Status is the HTTP status code the page was served with,
	// it is zero for pages that were not fetched over HTTP.
	Status int

	body io.ReadCloser
	root *html.Node
	once sync.Once
	err  error
}

// NewPage returns a page that reads its HTML from r.
//
// If r is an io.ReadCloser it is closed once the page is parsed.
func NewPage(u *url.URL, r io.Reader) *Page {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = ioutil.NopCloser(r)
	}
	return &Page{
		URL:  u,
		body: rc,
	}
}

// Parse parses the page into a root node.
//
// If the root node is already parsed, or has
// errored, the method is a no-op.
func (p *Page) parse() error {
	p.once.Do(func() {
		p.root, p.err = html.Parse(p.body)
		if p.err != nil {
			p.err = fmt.Errorf("quotes: parse html %q - %w", p.URL, p.err)
		}
		p.close()
	})
	return p.err
}

// Scan scans data into the given value dst.
//
// The value must be a pointer to a struct with `css`
// tags, see the internal scan package for details.
func (p *Page) Scan(dst interface{}) error {
	if err := p.parse(); err != nil {
		return err
	}
	return scanner.Scan(dst, p.root, scan.Options{})
}

// Close closes the page's body.
func (p *Page) close() error {
	io.Copy(ioutil.Discard, p.body)
	return p.body.Close()
}
