package paperscan

import (
	"context"
	"fmt"
	"image"
	"strings"
)

// Surface is the rendering oracle: it holds the current content on a styled
// sheet, reports its rendered height and captures it as a bitmap.
// Implementations are used by one generation at a time.
type Surface interface {
	// SetContent replaces the sheet content with markup.
	SetContent(ctx context.Context, markup string) error

	// ContentHeight returns the rendered sheet height in CSS pixels.
	// An empty sheet reports its fixed empty-state height.
	ContentHeight(ctx context.Context) (float64, error)

	// ApplyPaperStyles installs the sheet style. RemovePaperStyles undoes it.
	ApplyPaperStyles(ctx context.Context, style PaperStyle) error
	RemovePaperStyles(ctx context.Context) error

	// ResetScroll returns the viewport to the origin.
	ResetScroll(ctx context.Context) error

	// HasImages reports whether the current content embeds images.
	HasImages(ctx context.Context) (bool, error)

	// Capture rasterizes the sheet.
	Capture(ctx context.Context, opts CaptureOptions) (image.Image, error)

	Close() error
}

// CaptureOptions controls a single capture.
type CaptureOptions struct {
	ScrollX     int
	ScrollY     int
	Scale       float64
	CrossOrigin bool
}

// SurfaceKind selects the built-in Surface implementation.
type SurfaceKind string

// Built-in surfaces.
const (
	// SurfaceChrome renders through headless Chrome (full HTML and CSS).
	SurfaceChrome SurfaceKind = "chrome"
	// SurfaceCanvas renders text blocks in pure Go without a browser.
	SurfaceCanvas SurfaceKind = "canvas"
)

// ParseSurfaceKind maps a name to a SurfaceKind. Empty means SurfaceChrome.
func ParseSurfaceKind(s string) (SurfaceKind, error) {
	switch SurfaceKind(strings.ToLower(s)) {
	case "", SurfaceChrome:
		return SurfaceChrome, nil
	case SurfaceCanvas:
		return SurfaceCanvas, nil
	}
	return "", fmt.Errorf("%w: %q (must be chrome or canvas)", ErrInvalidSurface, s)
}
