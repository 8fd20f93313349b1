// Package selectors compiles and caches CSS selectors.
//
// Struct tags are compiled once per type by the scanner, but the same
// selectors (`.quote`, `.text`...) show up across many types and tests,
// the cache keeps a single compiled copy of each.
package selectors

import (
	"sync"

	"github.com/andybalholm/cascadia"
)

// Cache is a global cache of selectors.
var cache = NewCache()

// Compile compiles the given selector.
//
// It uses a global pre-initialized cache
// of selectors.
func Compile(selector string) (cascadia.Selector, error) {
	return cache.Compile(selector)
}

// Cache implementation.
type Cache struct {
	m sync.Map
}

// NewCache returns a new cache.
func NewCache() *Cache {
	return &Cache{}
}

// Compile compiles the given selector.
//
// The method returns an error if the selector is invalid,
// invalid selectors are not cached.
func (c *Cache) Compile(selector string) (cascadia.Selector, error) {
	if s, ok := c.m.Load(selector); ok {
		return s.(cascadia.Selector), nil
	}

	v, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}

	actual, _ := c.m.LoadOrStore(selector, v)
	return actual.(cascadia.Selector), nil
}

// Len returns the number of cached selectors.
func (c *Cache) Len() (n int) {
	c.m.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return
}
