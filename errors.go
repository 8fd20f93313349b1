package quotes

import (
	"errors"

	"github.com/yields/quotes/internal/scan"
)

var (
	// ErrMissingElement is returned when a quote block
	// lacks its text, author or tags element.
	ErrMissingElement = scan.ErrNotFound

	// ErrDisallowed is returned when robots.txt disallows
	// fetching a page and robots checks are enabled.
	ErrDisallowed = errors.New("disallowed by robots.txt")
)
