// Package paginate splits markup into pages by repeatedly measuring the
// rendered height of a growing candidate page.
//
// The package knows nothing about browsers or canvases: height comes from
// a MeasureFunc supplied by the caller, which makes the algorithm testable
// with deterministic fake measurements.
package paginate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors for pagination.
var (
	ErrMeasure          = errors.New("measuring page height failed")
	ErrInvalidMaxHeight = errors.New("max height must be positive")
)

// MeasureFunc renders candidate markup and returns its height.
type MeasureFunc func(ctx context.Context, candidate string) (float64, error)

// Page is a contiguous run of tokens destined for one image.
type Page struct {
	Markup string
	Tokens int
	// Oversized marks a page holding a single token taller than the limit.
	Oversized bool
}

// Tokenize splits content into alternating runs of non-whitespace and
// whitespace. Joining the result yields content unchanged.
func Tokenize(content string) []string {
	if content == "" {
		return nil
	}

	var tokens []string
	start := 0
	r, _ := utf8.DecodeRuneInString(content)
	inSpace := unicode.IsSpace(r)

	for i, r := range content {
		space := unicode.IsSpace(r)
		if space != inSpace {
			tokens = append(tokens, content[start:i])
			start = i
			inSpace = space
		}
	}
	return append(tokens, content[start:])
}

// Paginate greedily packs the tokens of content into pages whose measured
// height does not exceed maxHeight.
//
// A token that overflows a non-empty page closes that page and is retried
// on a fresh one. A token that overflows an empty page is placed alone on
// an oversized page so the loop always advances.
func Paginate(ctx context.Context, content string, measure MeasureFunc, maxHeight float64) ([]Page, error) {
	if maxHeight <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidMaxHeight, maxHeight)
	}

	tokens := Tokenize(content)
	pages := make([]Page, 0, 1)

	var acc strings.Builder
	count := 0

	for i := 0; i < len(tokens); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prevLen := acc.Len()
		acc.WriteString(tokens[i])

		height, err := measure(ctx, acc.String())
		if err != nil {
			return nil, fmt.Errorf("%w: token %d: %v", ErrMeasure, i, err)
		}

		if height <= maxHeight {
			count++
			i++
			continue
		}

		if count == 0 {
			pages = append(pages, Page{Markup: tokens[i], Tokens: 1, Oversized: true})
			acc.Reset()
			i++
			continue
		}

		// Drop the overflowing token and close the page; the token is retried.
		page := acc.String()[:prevLen]
		pages = append(pages, Page{Markup: page, Tokens: count})
		acc.Reset()
		count = 0
	}

	if count > 0 {
		pages = append(pages, Page{Markup: acc.String(), Tokens: count})
	}

	return pages, nil
}

// Join concatenates the markup of pages in order.
func Join(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.Markup)
	}
	return b.String()
}
