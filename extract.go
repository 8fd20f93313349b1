package quotes

import (
	"fmt"
	"strings"
)

// TagsLabel is the label that prefixes a quote's tags.
const TagsLabel = "Tags:"

// Block is the markup of a single quote block.
type block struct {
	Text   string `css:".text"   scan:"required"`
	Author string `css:".author" scan:"required"`
	Tags   string `css:".tags"   scan:"required"`
}

// Listing is the markup of a listing page.
type listing struct {
	Blocks []block `css:".quote"`
}

// Extract extracts all quotes on the page in document order.
//
// Every `.quote` block must contain a `.text`, `.author` and
// `.tags` element, otherwise the method returns an error that
// wraps ErrMissingElement. A page without quote blocks yields
// an empty slice.
func Extract(p *Page) ([]Quote, error) {
	var l listing

	if err := p.Scan(&l); err != nil {
		return nil, fmt.Errorf("quotes: extract %q - %w", p.URL, err)
	}

	ret := make([]Quote, 0, len(l.Blocks))
	for _, b := range l.Blocks {
		ret = append(ret, Quote{
			Text:   b.Text,
			Author: b.Author,
			Tags:   splitTags(b.Tags),
		})
	}

	return ret, nil
}

// SplitTags splits the text of a tags element into tags.
//
// The text is split on whitespace, the label and empty
// tokens are dropped, order and duplicates are kept.
func splitTags(blob string) []string {
	var tags = make([]string, 0)

	for _, tok := range strings.Fields(blob) {
		if tok != TagsLabel {
			tags = append(tags, tok)
		}
	}

	return tags
}
