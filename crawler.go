package quotes

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/apex/log"
	"github.com/yields/quotes/internal/robots"
	"golang.org/x/sync/errgroup"
)

const (
	// BaseURL is the default site to crawl.
	BaseURL = "https://quotes.toscrape.com/"

	// DefaultPages is the default number of listing pages.
	DefaultPages = 10
)

// CrawlerConfig configures the crawler.
type CrawlerConfig struct {
	// BaseURL is the URL of the first listing page.
	//
	// Page N > 1 is at `page/N/` relative to it.
	//
	// If empty, quotes.BaseURL is used.
	BaseURL string

	// Pages is the number of listing pages to crawl.
	//
	// Page 1 is always crawled, pages 2 through Pages follow.
	// The site is never asked how many pages it has.
	//
	// If 0, DefaultPages is used, negative values are an error.
	Pages int

	// Fetcher is the page fetcher to use.
	//
	// If nil, the default HTTP fetcher is used.
	Fetcher *Fetcher

	// Concurrency controls how many pages are fetched at once.
	//
	// Records are returned in page order regardless.
	//
	// If <= 0, it defaults to 1 and pages are crawled
	// one after the other.
	Concurrency int

	// Robots enables robots.txt checks.
	//
	// When enabled a page that robots.txt disallows aborts
	// the crawl with ErrDisallowed and crawl delays are honored.
	Robots bool

	// Logger is the logger to use.
	//
	// If nil, log.Log is used.
	Logger log.Interface
}

// Crawler crawls a fixed range of listing pages.
type Crawler struct {
	base        *url.URL
	pages       int
	fetcher     *Fetcher
	concurrency int
	robots      *robots.Cache
	log         log.Interface
}

// NewCrawler returns a new crawler.
func NewCrawler(c CrawlerConfig) (*Crawler, error) {
	if c.BaseURL == "" {
		c.BaseURL = BaseURL
	}

	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("quotes: parse base url %q - %w", c.BaseURL, err)
	}

	if !base.IsAbs() {
		return nil, fmt.Errorf("quotes: base url %q is not absolute", c.BaseURL)
	}

	if c.Pages < 0 {
		return nil, fmt.Errorf("quotes: pages must be positive, got %d", c.Pages)
	}

	if c.Pages == 0 {
		c.Pages = DefaultPages
	}

	if c.Fetcher == nil {
		c.Fetcher = &Fetcher{}
	}

	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}

	if c.Logger == nil {
		c.Logger = log.Log
	}

	var rc *robots.Cache
	if c.Robots {
		rc = robots.NewCache(c.Fetcher.client(), 16)
	}

	return &Crawler{
		base:        base,
		pages:       c.Pages,
		fetcher:     c.Fetcher,
		concurrency: c.Concurrency,
		robots:      rc,
		log:         c.Logger,
	}, nil
}

// PageURL returns the URL of listing page n.
//
// Page 1 is the base URL, page n > 1 is `page/n/`
// resolved against the base URL.
func (c *Crawler) PageURL(n int) *URL {
	if n <= 1 {
		u := *c.base
		return &u
	}

	ref := &url.URL{Path: "page/" + strconv.Itoa(n) + "/"}
	return c.base.ResolveReference(ref)
}

// Run crawls pages 1 through N and returns all quotes.
//
// Quotes are returned in page order and document order within
// a page. Any failure aborts the crawl, pages that were
// already scraped are discarded.
func (c *Crawler) Run(ctx context.Context) ([]Quote, error) {
	var pages = make([][]Quote, c.pages)
	var eg, subctx = errgroup.WithContext(ctx)

	eg.SetLimit(c.concurrency)

	for n := 1; n <= c.pages; n++ {
		n := n
		eg.Go(func() error {
			if err := subctx.Err(); err != nil {
				return err
			}

			quotes, err := c.scrape(subctx, n)
			if err != nil {
				return err
			}

			pages[n-1] = quotes
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("quotes: run - %w", err)
	}

	var all []Quote
	for _, quotes := range pages {
		all = append(all, quotes...)
	}

	c.log.WithFields(log.Fields{
		"pages":  c.pages,
		"quotes": len(all),
	}).Info("Got all quotes")

	return all, nil
}

// Scrape fetches page n and extracts its quotes.
func (c *Crawler) scrape(ctx context.Context, n int) ([]Quote, error) {
	var url = c.PageURL(n)

	c.log.Infof("Getting quotes for page %d", n)

	if err := c.allow(ctx, url); err != nil {
		return nil, err
	}

	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("quotes: fetch page %d - %w", n, err)
	}
	defer page.close()

	quotes, err := Extract(page)
	if err != nil {
		return nil, fmt.Errorf("quotes: page %d - %w", n, err)
	}

	c.log.WithFields(log.Fields{
		"page":   n,
		"status": page.Status,
		"quotes": len(quotes),
	}).Debug("extracted page")

	return quotes, nil
}

// Allow consults robots.txt when enabled.
func (c *Crawler) allow(ctx context.Context, u *URL) error {
	if c.robots == nil {
		return nil
	}

	req := robots.Request{
		URL:       u,
		UserAgent: c.fetcher.userAgent(),
	}

	allowed, err := c.robots.Allowed(ctx, req)
	if err != nil {
		return fmt.Errorf("quotes: robots %q - %w", u, err)
	}

	if !allowed {
		return fmt.Errorf("quotes: %q - %w", u, ErrDisallowed)
	}

	if err := c.robots.Wait(ctx, req); err != nil {
		return fmt.Errorf("quotes: robots wait - %w", err)
	}

	return nil
}
