package paperscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alnah/go-paperscan/internal/assets"
	"github.com/alnah/go-paperscan/internal/effect"
	"github.com/alnah/go-paperscan/internal/paginate"
	"github.com/alnah/go-paperscan/internal/pipeline"
)

// Compile-time interface implementation checks.
var _ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)

// State is the phase of a running generation.
type State int32

// Generation phases.
const (
	StateIdle State = iota
	StateMeasuring
	StatePaginating
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMeasuring:
		return "measuring"
	case StatePaginating:
		return "paginating"
	case StateRendering:
		return "rendering"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// WarnSplitImages is the Result warning for content with images split across pages.
// Page breaks fall on whitespace, which includes the inside of a tag.
const WarnSplitImages = "content contains images; they may be cut or misplaced across pages"

// Session turns documents into page images on one render surface and keeps
// them in a reorderable collection.
// Create with NewSession, call Generate for each document, and Close when done.
type Session struct {
	cfg           sessionConfig
	surface       Surface
	assets        assets.AssetLoader
	collection    *Collection
	htmlConverter pipeline.HTMLConverter

	busy  atomic.Bool
	state atomic.Int32

	now         func() time.Time
	shadowAngle func() float64
}

// NewSession creates a Session with default configuration.
// Use options to customize behavior (e.g., WithSurfaceKind, WithPaper).
// The browser surface starts Chrome lazily on the first generation.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		cfg: sessionConfig{
			timeout:     defaultTimeout,
			scale:       DefaultScale,
			surfaceKind: SurfaceChrome,
			warnings:    io.Discard,
		},
		collection:    NewCollection(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		now:           time.Now,
		shadowAngle:   effect.RandomAngle,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.scale < MinScale || s.cfg.scale > MaxScale {
		return nil, fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidScale, s.cfg.scale, MinScale, MaxScale)
	}
	if s.cfg.paper == nil {
		s.cfg.paper = DefaultPaperStyle()
	}
	if err := s.cfg.paper.Validate(); err != nil {
		return nil, err
	}
	if s.cfg.warnings == nil {
		s.cfg.warnings = io.Discard
	}

	resolver, err := assets.NewAssetResolver(s.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	s.assets = resolver

	if s.surface == nil {
		s.surface, err = s.newSurface()
		if err != nil {
			return nil, err
		}
	}

	for _, o := range s.cfg.observers {
		s.collection.Subscribe(o)
	}
	return s, nil
}

// newSurface creates the built-in surface selected by the configuration.
func (s *Session) newSurface() (Surface, error) {
	switch s.cfg.surfaceKind {
	case "", SurfaceChrome:
		return newRodSurface(rodConfig{
			loader:    s.assets,
			timeout:   s.cfg.timeout,
			bin:       s.cfg.browserBin,
			noSandbox: s.cfg.noSandbox,
			extraCSS:  s.cfg.extraCSS,
		}), nil
	case SurfaceCanvas:
		return newCanvasSurface()
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidSurface, s.cfg.surfaceKind)
}

// Collection returns the gallery filled by Generate.
func (s *Session) Collection() *Collection {
	return s.collection
}

// State returns the current generation phase.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Close releases the render surface (headless Chrome browser).
func (s *Session) Close() error {
	if s.surface != nil {
		return s.surface.Close()
	}
	return nil
}

// Generate renders input into one or more images appended to the collection.
//
// Content that fits the empty sheet is captured once. Taller content is split
// at whitespace boundaries by re-measuring the sheet after every token, then
// each page is captured in order. Paper styles are removed on every exit path.
// A second call while one is running fails with ErrBusy.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (s *Session) Generate(ctx context.Context, input Input) (result Result, err error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer s.busy.Store(false)
	defer s.setState(StateIdle)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := s.now()
	defer func() { result.Duration = s.now().Sub(start) }()

	if s.surface == nil {
		return result, ErrNilSurface
	}
	if err := input.Validate(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	markup, err := s.prepareMarkup(ctx, input)
	if err != nil {
		return result, err
	}
	if strings.TrimSpace(markup) == "" {
		return result, ErrEmptyContent
	}

	s.setState(StateMeasuring)
	if err := s.surface.ApplyPaperStyles(ctx, s.resolvePaper(input)); err != nil {
		return result, fmt.Errorf("applying paper styles: %w", err)
	}
	defer func() {
		if rerr := s.surface.RemovePaperStyles(context.WithoutCancel(ctx)); rerr != nil {
			err = errors.Join(err, fmt.Errorf("removing paper styles: %w", rerr))
		}
	}()

	if err := s.surface.ResetScroll(ctx); err != nil {
		return result, fmt.Errorf("%w: resetting scroll: %v", ErrMeasure, err)
	}

	maxHeight, err := s.pageBudget(ctx)
	if err != nil {
		return result, err
	}
	height, err := s.measure(ctx, markup)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrMeasure, err)
	}

	r := s.newRasterizer(input)

	if height <= maxHeight {
		s.setState(StateRendering)
		img, err := r.Rasterize(ctx, markup)
		if err != nil {
			return result, err
		}
		img.Page = 1
		s.collection.Append(img)
		result.Pages = 1
		return result, nil
	}

	s.setState(StatePaginating)
	hasImages, err := s.surface.HasImages(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: detecting images: %v", ErrMeasure, err)
	}
	if hasImages {
		s.warn(&result, WarnSplitImages)
	}

	pages, err := paginate.Paginate(ctx, markup, s.measure, maxHeight)
	if err != nil {
		return result, err
	}
	if err := s.surface.SetContent(ctx, markup); err != nil {
		return result, fmt.Errorf("%w: restoring content: %v", ErrMeasure, err)
	}

	s.setState(StateRendering)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		img, err := r.Rasterize(ctx, page.Markup)
		if err != nil {
			return result, fmt.Errorf("page %d: %w", i+1, err)
		}
		img.Page = i + 1
		img.Oversized = page.Oversized
		s.collection.Append(img)
		result.Pages++

		if page.Oversized {
			result.Oversized++
			s.warn(&result, fmt.Sprintf("page %d holds a single token taller than the sheet", i+1))
		}

		if err := s.surface.SetContent(ctx, markup); err != nil {
			return result, fmt.Errorf("%w: restoring content: %v", ErrConversion, err)
		}
	}

	return result, nil
}

// prepareMarkup converts input content to the HTML fragment written into the sheet.
func (s *Session) prepareMarkup(ctx context.Context, input Input) (string, error) {
	var markup string
	switch input.Format {
	case FormatMarkdown:
		html, err := s.htmlConverter.ToHTML(ctx, input.Content)
		if err != nil {
			return "", fmt.Errorf("converting markdown: %w", err)
		}
		markup = html
	case FormatText:
		markup = pipeline.TextToMarkup(input.Content)
	default:
		markup = pipeline.NormalizeLineEndings(input.Content)
	}

	if input.SourceDir != "" {
		rewritten, err := pipeline.RewriteRelativePaths(markup, input.SourceDir)
		if err != nil {
			return "", fmt.Errorf("rewriting relative paths: %w", err)
		}
		markup = rewritten
	}
	return markup, nil
}

// resolvePaper picks the sheet for input and resolves the shadows effect.
func (s *Session) resolvePaper(input Input) PaperStyle {
	paper := *s.cfg.paper
	if input.Paper != nil {
		paper = *input.Paper
	}
	if input.Effect == EffectShadows {
		paper.Shadows = true
		if input.ShadowAngle != nil {
			paper.ShadowAngle = *input.ShadowAngle
		} else {
			paper.ShadowAngle = s.shadowAngle()
		}
	}
	return paper
}

// newRasterizer builds the capture settings for input.
func (s *Session) newRasterizer(input Input) *pageRasterizer {
	scale := input.Scale
	if scale == 0 {
		scale = s.cfg.scale
	}
	contrast := input.Contrast
	if contrast == 0 {
		contrast = effect.DefaultScannerLevel
	}
	return &pageRasterizer{
		surface: s.surface,
		capture: CaptureOptions{
			ScrollX:     input.ScrollX,
			ScrollY:     input.ScrollY,
			Scale:       scale,
			CrossOrigin: input.CrossOrigin,
		},
		effect:   input.Effect,
		contrast: contrast,
	}
}

// pageBudget returns the maximum page height: the configured value, or the
// height of the empty styled sheet.
func (s *Session) pageBudget(ctx context.Context) (float64, error) {
	if s.cfg.maxHeight > 0 {
		return s.cfg.maxHeight, nil
	}
	h, err := s.measure(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("%w: empty sheet: %v", ErrMeasure, err)
	}
	if h <= 0 {
		return 0, fmt.Errorf("%w: empty sheet height %.1f", ErrMeasure, h)
	}
	return h, nil
}

// measure writes candidate into the sheet and returns the rendered height.
func (s *Session) measure(ctx context.Context, candidate string) (float64, error) {
	if err := s.surface.SetContent(ctx, candidate); err != nil {
		return 0, err
	}
	return s.surface.ContentHeight(ctx)
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

// warn records a non-fatal issue and writes it to the warning writer.
func (s *Session) warn(result *Result, msg string) {
	result.Warnings = append(result.Warnings, msg)
	fmt.Fprintf(s.cfg.warnings, "warning: %s\n", msg)
}
