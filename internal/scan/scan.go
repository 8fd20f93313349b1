package scan

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrNotFound is returned when a required field's
// selector does not match any node.
var ErrNotFound = errors.New("no node matches selector")

// Options represents the scan options.
type Options struct {
	Selector cascadia.Selector
}

// ScanFunc represents a scanner func.
//
// The function receives a destination to scan into and
// the source as the root html node.
//
// Scan functions can be nested, a slice scan func nests
// its element type and a struct scan func nests its fields.
type ScanFunc func(dst reflect.Value, n *html.Node) error

// ScannerOf returns a scanner of type t using opts.
//
// If the type is not supported, the method returns
// an error with type information.
func ScannerOf(t reflect.Type, opts Options) (ScanFunc, error) {
	switch t.Kind() {
	case reflect.String:
		return String(opts), nil

	case reflect.Struct:
		return Struct(opts, t)

	case reflect.Slice:
		return Slice(opts, t)
	}

	return nil, fmt.Errorf("scan: cannot scan into type %s", t)
}

// String returns a scanner func for a string.
func String(opts Options) ScanFunc {
	return func(dst reflect.Value, src *html.Node) error {
		if opts.Selector != nil {
			src = opts.Selector.MatchFirst(src)
		}
		dst.SetString(Text(src))
		return nil
	}
}

// Required wraps f so that it fails with ErrNotFound
// when sel matches nothing under the source node.
func required(css string, sel cascadia.Selector, f ScanFunc) ScanFunc {
	return func(dst reflect.Value, src *html.Node) error {
		if sel.MatchFirst(src) == nil {
			return fmt.Errorf("scan: %q - %w", css, ErrNotFound)
		}
		return f(dst, src)
	}
}
