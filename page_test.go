package quotes

import (
	"io"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	t.Run("scan", func(t *testing.T) {
		var page = makePage(t, `<title>Quotes</title><small class="author">Albert Einstein</small>`)
		var assert = require.New(t)
		var dst struct {
			Title  string `css:"title"`
			Author string `css:".author"`
		}

		err := page.Scan(&dst)

		assert.NoError(err)
		assert.Equal("Quotes", dst.Title)
		assert.Equal("Albert Einstein", dst.Author)
	})

	t.Run("scan twice", func(t *testing.T) {
		var page = makePage(t, `<title>Quotes</title>`)
		var assert = require.New(t)
		var a, b struct {
			Title string `css:"title"`
		}

		assert.NoError(page.Scan(&a))
		assert.NoError(page.Scan(&b))
		assert.Equal(a, b)
	})

	t.Run("scan invalid HTML", func(t *testing.T) {
		var u, _ = url.Parse("https://example.com")
		var page = NewPage(u, readerError{})
		var assert = require.New(t)
		var dst struct {
			Title string `css:"title"`
		}

		err := page.Scan(&dst)
		assert.Error(err)
		assert.EqualError(err, `quotes: parse html "https://example.com" - short buffer`)
	})

	t.Run("closes body", func(t *testing.T) {
		var u, _ = url.Parse("https://example.com")
		var body = &closeRecorder{Reader: strings.NewReader(`<title>x</title>`)}
		var page = NewPage(u, body)
		var assert = require.New(t)
		var dst struct {
			Title string `css:"title"`
		}

		assert.NoError(page.Scan(&dst))
		assert.True(body.closed)
	})
}

func BenchmarkPage(b *testing.B) {
	var buf, err = os.ReadFile("testdata/page1.html")
	if err != nil {
		b.Fatalf("read: %s", err)
	}

	b.Run("extract", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			p := makePage(b, string(buf))
			if _, err := Extract(p); err != nil {
				b.Fatalf("extract: %s", err)
			}
		}
	})
}

func makePage(t testing.TB, buf string) *Page {
	t.Helper()
	u, _ := url.Parse("https://example.com")
	return NewPage(u, strings.NewReader(buf))
}

func readFixture(t testing.TB, name string) *Page {
	t.Helper()

	buf, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture: %s", err)
	}

	return makePage(t, string(buf))
}

type readerError struct{}

func (readerError) Read(p []byte) (n int, err error) {
	err = io.ErrShortBuffer
	return
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}
