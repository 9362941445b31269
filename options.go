package paperscan

import (
	"io"
	"time"
)

// Option configures a Session.
type Option func(*Session)

// sessionConfig holds internal configuration for Session.
type sessionConfig struct {
	timeout     time.Duration
	maxHeight   float64
	scale       float64
	paper       *PaperStyle
	surfaceKind SurfaceKind
	assetPath   string
	extraCSS    string
	browserBin  string
	noSandbox   bool
	pdfTitle    string
	pdfAuthor   string
	warnings    io.Writer
	observers   []Observer
}

// defaultTimeout bounds browser page loads when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load timeout of the browser surface.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("paperscan: WithTimeout duration must be positive")
	}
	return func(s *Session) {
		s.cfg.timeout = d
	}
}

// WithSurface injects a render surface. The session takes ownership and
// closes it on Close.
func WithSurface(surface Surface) Option {
	return func(s *Session) {
		s.surface = surface
	}
}

// WithSurfaceKind selects the built-in surface created when none is injected.
func WithSurfaceKind(kind SurfaceKind) Option {
	return func(s *Session) {
		s.cfg.surfaceKind = kind
	}
}

// WithMaxHeight fixes the page height budget in CSS pixels instead of
// measuring the empty sheet. Values <= 0 restore measurement.
func WithMaxHeight(h float64) Option {
	return func(s *Session) {
		s.cfg.maxHeight = h
	}
}

// WithScale sets the default capture scale (resolution multiplier).
func WithScale(scale float64) Option {
	return func(s *Session) {
		s.cfg.scale = scale
	}
}

// WithPaper sets the default sheet style used when Input.Paper is nil.
func WithPaper(p *PaperStyle) Option {
	return func(s *Session) {
		s.cfg.paper = p
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// built-in assets.
func WithAssetPath(path string) Option {
	return func(s *Session) {
		s.cfg.assetPath = path
	}
}

// WithCSS appends CSS to the browser surface shell for every generation.
func WithCSS(css string) Option {
	return func(s *Session) {
		s.cfg.extraCSS = css
	}
}

// WithBrowserBin uses a pre-installed Chrome binary instead of the one
// managed by rod. ROD_BROWSER_BIN is used when unset.
func WithBrowserBin(path string) Option {
	return func(s *Session) {
		s.cfg.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox (containers, CI).
func WithNoSandbox(noSandbox bool) Option {
	return func(s *Session) {
		s.cfg.noSandbox = noSandbox
	}
}

// WithWarnings sets the writer receiving non-fatal warnings.
func WithWarnings(w io.Writer) Option {
	return func(s *Session) {
		s.cfg.warnings = w
	}
}

// WithObserver subscribes o to the session collection.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.cfg.observers = append(s.cfg.observers, o)
	}
}

// WithPDFInfo sets the title and author written into exported PDFs.
func WithPDFInfo(title, author string) Option {
	return func(s *Session) {
		s.cfg.pdfTitle = title
		s.cfg.pdfAuthor = author
	}
}
