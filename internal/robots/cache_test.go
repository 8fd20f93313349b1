package robots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/robots.txt")

		allowed, err := cache.Allowed(ctx, request(t, url+"/page/2/", "quotes"))
		assert.NoError(err)
		assert.True(allowed)
	})

	t.Run("allowed cancel", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/robots.txt")

		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := cache.Allowed(ctx, request(t, url+"/page/2/", "quotes"))
		assert.Error(err)
		assert.True(errors.Is(err, context.Canceled))
	})

	t.Run("disallow", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/robots.txt")

		allowed, err := cache.Allowed(ctx, request(t, url+"/login", "quotes"))
		assert.NoError(err)
		assert.False(allowed)
	})

	t.Run("disallow agent", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/robots.txt")

		allowed, err := cache.Allowed(ctx, request(t, url+"/", "badbot"))
		assert.NoError(err)
		assert.False(allowed)
	})

	t.Run("missing robots.txt allows all", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/missing.txt")

		allowed, err := cache.Allowed(ctx, request(t, url+"/login", "quotes"))
		assert.NoError(err)
		assert.True(allowed)
	})

	t.Run("cached per host", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, hits = serve(t, "testdata/robots.txt")

		for _, path := range []string{"/", "/page/2/", "/page/3/"} {
			_, err := cache.Allowed(ctx, request(t, url+path, "quotes"))
			assert.NoError(err)
		}

		assert.Equal(uint64(1), atomic.LoadUint64(hits))
	})

	t.Run("wait without delay", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/robots.txt")

		err := cache.Wait(ctx, request(t, url, "quotes"))
		assert.NoError(err)
	})

	t.Run("delay cancel", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var cache = NewCache(http.DefaultClient, 50)
		var url, _ = serve(t, "testdata/robots.txt")
		var req = request(t, url, "slowbot")

		_, err := cache.Allowed(ctx, req)
		assert.NoError(err)

		ctx, cancel := context.WithCancel(ctx)
		cancel()

		err = cache.Wait(ctx, req)
		assert.Error(err)
		assert.True(errors.Is(err, context.Canceled))
	})
}

func request(t testing.TB, rawurl, ua string) Request {
	t.Helper()

	u, err := url.Parse(rawurl)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	return Request{
		URL:       u,
		UserAgent: ua,
	}
}

func serve(t testing.TB, path string) (uri string, hits *uint64) {
	t.Helper()

	hits = new(uint64)
	serve := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddUint64(hits, 1)
			http.ServeFile(w, r, path)
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(serve))
	t.Cleanup(func() {
		srv.Close()
	})

	return srv.URL, hits
}
