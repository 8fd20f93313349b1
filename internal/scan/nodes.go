package scan

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the inner text of n.
//
// Text of all descendant text nodes is concatenated
// in document order, whitespace is kept as-is.
func Text(n *html.Node) string {
	var b strings.Builder

	if n == nil {
		return ""
	}

	if n.Type == html.TextNode {
		return n.Data
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			b.WriteString(Text(c))
		}
	}

	return b.String()
}
