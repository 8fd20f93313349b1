package scan

import (
	"fmt"
	"reflect"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// SliceScanner implements a slice scanner.
type sliceScanner struct {
	selector  cascadia.Selector
	scanFunc  ScanFunc
	sliceType reflect.Type
}

// Slice returns a new slice scanner.
//
// A slice needs a selector, every matching node
// becomes one element in document order.
func Slice(opts Options, t reflect.Type) (ScanFunc, error) {
	if opts.Selector == nil {
		return nil, fmt.Errorf("scan: slice %s requires a selector", t)
	}

	f, err := ScannerOf(t.Elem(), Options{})
	if err != nil {
		return nil, err
	}

	return (sliceScanner{
		selector:  opts.Selector,
		scanFunc:  f,
		sliceType: t,
	}).scan, nil
}

// Scan implements a slice scanner.
func (ss sliceScanner) scan(dst reflect.Value, src *html.Node) error {
	var nodes = ss.selector.MatchAll(src)

	if len(nodes) == 0 {
		return nil
	}

	slice := reflect.MakeSlice(
		ss.sliceType,
		len(nodes),
		len(nodes),
	)

	for j, node := range nodes {
		if err := ss.scanFunc(slice.Index(j), node); err != nil {
			return fmt.Errorf("scan: element %d - %w", j, err)
		}
	}

	dst.Set(slice)
	return nil
}
