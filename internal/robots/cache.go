// Package robots implements an opt-in robots.txt policy.
//
// The policy is consulted before every page fetch, it answers
// whether the page may be fetched and how long to wait before
// fetching it.
package robots

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/segmentio/agecache"
	"github.com/temoto/robotstxt"
)

// Doer sends HTTP requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request represents a request.
type Request struct {
	UserAgent string
	URL       *url.URL
}

// UserAgent returns the useragent or *.
func (r Request) userAgent() string {
	if r.UserAgent != "" {
		return r.UserAgent
	}
	return "*"
}

// Site represents a site's parsed robots.txt.
//
// A site without data allows everything.
type Site struct {
	data *robotstxt.RobotsData
}

// Find returns a group by useragent.
func (s *Site) find(ua string) (*robotstxt.Group, bool) {
	if s.data != nil {
		g := s.data.FindGroup(ua)
		return g, g != nil
	}
	return nil, false
}

// Test tests the useragent.
func (s *Site) test(path, ua string) bool {
	if s.data != nil {
		return s.data.TestAgent(path, ua)
	}
	return true
}

// Cache implements an LRU robots cache.
//
// The cache maps hostnames to their parsed robots.txt, the
// first lookup of a host fetches and parses its robots.txt.
type Cache struct {
	client Doer
	lru    *agecache.Cache
}

// NewCache returns a new cache.
//
// The client is used to fetch robots.txt files.
func NewCache(client Doer, capacity int) *Cache {
	lru := agecache.New(agecache.Config{
		Capacity:           capacity,
		MaxAge:             1 * time.Hour,
		ExpirationType:     agecache.PassiveExpration,
		ExpirationInterval: 1 * time.Minute,
	})
	return &Cache{
		client: client,
		lru:    lru,
	}
}

// Allowed returns true if the request is allowed.
//
// The method returns an error if the context is canceled,
// the robots.txt cannot be fetched or it cannot be parsed.
func (c *Cache) Allowed(ctx context.Context, req Request) (bool, error) {
	site, err := c.lookup(ctx, req.URL)
	if err != nil {
		return false, err
	}
	return site.test(req.URL.Path, req.userAgent()), nil
}

// Wait blocks until the given request can be sent.
//
// When the matching group defines a crawl-delay the method
// sleeps for that long or until the context is canceled.
func (c *Cache) Wait(ctx context.Context, req Request) error {
	site, err := c.lookup(ctx, req.URL)
	if err != nil {
		return err
	}

	if g, ok := site.find(req.userAgent()); ok {
		if d := g.CrawlDelay; d > 0 {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				return nil
			}
		}
	}

	return ctx.Err()
}

// Lookup returns a site from url.
func (c *Cache) lookup(ctx context.Context, u *url.URL) (*Site, error) {
	if v, ok := c.lru.Get(u.Host); ok {
		return v.(*Site), nil
	}

	rawurl := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, "GET", rawurl, nil)
	if err != nil {
		return nil, fmt.Errorf("robots: new request - %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("robots: GET %q - %w", rawurl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s := &Site{}
		c.lru.Set(u.Host, s)
		return s, nil
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("robots: parse %q - %w", rawurl, err)
	}

	s := &Site{data: data}
	c.lru.Set(u.Host, s)
	return s, nil
}
