package scan

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/yields/quotes/internal/selectors"
	"golang.org/x/net/html"
)

// Field represents a struct field.
type field struct {
	index []int
	scan  ScanFunc
}

// StructScanner implements a struct scanner.
type StructScanner struct {
	selector cascadia.Selector
	fields   []field
}

// Struct returns a scanfunc for a struct or an error.
//
// Only exported fields with a `css` tag are scanned. A field
// tagged `scan:"required"` fails when its selector matches nothing.
//
// When opts carries a selector, fields are scanned relative to
// the first matching node and left empty if none matches.
func Struct(opts Options, t reflect.Type) (ScanFunc, error) {
	var fields []field

	for j := 0; j < t.NumField(); j++ {
		var f = t.Field(j)
		var css string

		if f.PkgPath != "" {
			continue
		}

		if css = f.Tag.Get("css"); len(css) == 0 {
			continue
		}

		sel, err := selectors.Compile(css)
		if err != nil {
			return nil, fmt.Errorf("scan: field %s - %w", f.Name, err)
		}

		scan, err := ScannerOf(f.Type, Options{
			Selector: sel,
		})
		if err != nil {
			return nil, err
		}

		if strings.Contains(f.Tag.Get("scan"), "required") {
			scan = required(css, sel, scan)
		}

		fields = append(fields, field{
			index: f.Index,
			scan:  scan,
		})
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("scan: struct %v has no css tags", t)
	}

	return (StructScanner{
		selector: opts.Selector,
		fields:   fields,
	}).scan, nil
}

// Scan implements a scan func.
func (ss StructScanner) scan(dst reflect.Value, src *html.Node) error {
	if ss.selector != nil {
		if src = ss.selector.MatchFirst(src); src == nil {
			return nil
		}
	}

	for _, f := range ss.fields {
		v := dst.FieldByIndex(f.index)
		if err := f.scan(v, src); err != nil {
			return err
		}
	}
	return nil
}
