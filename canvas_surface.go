package paperscan

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/alnah/go-paperscan/internal/assets"
	"github.com/alnah/go-paperscan/internal/effect"
	"github.com/alnah/go-paperscan/internal/paginate"
	"github.com/alnah/go-paperscan/internal/pipeline"
)

// Compile-time interface check.
var _ Surface = (*canvasSurface)(nil)

// One canvas unit is one CSS pixel. Canvas font sizes are in points and its
// units are millimetres, so pixel font sizes convert with the mm/pt ratio.
const ptPerUnit = 72 / 25.4

// Sheet colors of the built-in styles.
var (
	paperColor  = canvas.Hex("#fdfdfb")
	ruleColor   = color.NRGBA{R: 70, G: 110, B: 200, A: 90}
	marginColor = color.NRGBA{R: 200, G: 40, B: 40, A: 153}
)

// canvasSurface lays out text blocks and rasterizes them in pure Go.
// It understands the built-in styles only; embedded images are detected but
// not drawn.
type canvasSurface struct {
	family  *canvas.FontFamily
	style   PaperStyle
	content string
	closed  bool
}

// newCanvasSurface creates a canvas surface using the Go Regular font.
func newCanvasSurface() (*canvasSurface, error) {
	family := canvas.NewFontFamily("paperscan")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	return &canvasSurface{family: family, style: *DefaultPaperStyle()}, nil
}

func (s *canvasSurface) check(ctx context.Context) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return ctx.Err()
}

// SetContent stores markup for layout.
func (s *canvasSurface) SetContent(ctx context.Context, markup string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.content = markup
	return nil
}

// ContentHeight returns the padded height of the wrapped lines, never less
// than the empty sheet.
func (s *canvasSurface) ContentHeight(ctx context.Context) (float64, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	return s.height(len(s.lines())), nil
}

// ApplyPaperStyles selects the sheet geometry. Only built-in styles are known.
func (s *canvasSurface) ApplyPaperStyles(ctx context.Context, style PaperStyle) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	switch style.Name {
	case assets.DefaultStyleName, assets.LinedStyleName, assets.GridStyleName:
	default:
		return fmt.Errorf("%w: %q (canvas surface supports %s)", ErrStyleNotFound, style.Name, strings.Join(assets.StyleNames(), ", "))
	}
	s.style = style
	return nil
}

// RemovePaperStyles restores the default sheet.
func (s *canvasSurface) RemovePaperStyles(ctx context.Context) error {
	s.style = *DefaultPaperStyle()
	return nil
}

// ResetScroll is a no-op: the canvas has no viewport.
func (s *canvasSurface) ResetScroll(ctx context.Context) error {
	return s.check(ctx)
}

// HasImages reports whether the content contains <img> elements.
func (s *canvasSurface) HasImages(ctx context.Context) (bool, error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	return pipeline.HasImages(s.content), nil
}

// Capture draws the sheet and its lines and rasterizes it at opts.Scale
// pixels per unit. Scroll offsets shift the drawing.
func (s *canvasSurface) Capture(ctx context.Context, opts CaptureOptions) (image.Image, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	p := s.style
	lines := s.lines()
	w, h := p.Width, s.height(len(lines))
	ox, oy := -float64(opts.ScrollX), -float64(opts.ScrollY)

	c := canvas.New(w, h)
	cx := canvas.NewContext(c)
	cx.SetCoordSystem(canvas.CartesianIV)

	cx.SetFillColor(paperColor)
	cx.SetStrokeColor(canvas.Transparent)
	cx.DrawPath(ox, oy, canvas.Rectangle(w, h))

	cx.SetFillColor(canvas.Transparent)
	cx.SetStrokeWidth(1)
	switch p.Name {
	case assets.LinedStyleName:
		cx.SetStrokeColor(ruleColor)
		for y := p.Padding + p.LineHeight; y < h; y += p.LineHeight {
			cx.DrawPath(ox, oy+y-0.5, hline(w))
		}
	case assets.GridStyleName:
		cx.SetStrokeColor(ruleColor)
		for y := p.LineHeight; y < h; y += p.LineHeight {
			cx.DrawPath(ox, oy+y-0.5, hline(w))
		}
		for x := p.LineHeight; x < w; x += p.LineHeight {
			cx.DrawPath(ox+x-0.5, oy, vline(h))
		}
	}
	if p.Margin > 0 {
		cx.SetStrokeColor(marginColor)
		cx.DrawPath(ox+p.Margin-0.5, oy, vline(h))
	}

	face := s.face()
	metrics := face.Metrics()
	lead := math.Max(p.LineHeight-metrics.LineHeight, 0) / 2
	x := ox + p.Padding + p.Margin
	for i, line := range lines {
		if line == "" {
			continue
		}
		baseline := oy + p.Padding + float64(i)*p.LineHeight + lead + metrics.Ascent
		cx.DrawText(x, baseline, canvas.NewTextLine(face, line, canvas.Left))
	}

	rgba := rasterizer.Draw(c, canvas.DPMM(scale), canvas.DefaultColorSpace)
	out := image.NewNRGBA(rgba.Bounds())
	draw.Draw(out, out.Bounds(), rgba, rgba.Bounds().Min, draw.Src)

	if p.Shadows {
		effect.Shadows(out, p.ShadowAngle)
	}
	return out, nil
}

// Close marks the surface unusable.
func (s *canvasSurface) Close() error {
	s.closed = true
	return nil
}

// face returns the font face for the current style.
func (s *canvasSurface) face() *canvas.FontFace {
	return s.family.Face(s.style.FontSize*ptPerUnit, canvas.Hex(s.style.Ink), canvas.FontRegular, canvas.FontNormal)
}

// lines wraps the content blocks to the sheet width. Empty blocks keep an
// empty line.
func (s *canvasSurface) lines() []string {
	face := s.face()
	limit := s.style.contentWidth()

	var out []string
	for _, block := range pipeline.TextBlocks(s.content) {
		wrapped := wrapText(block, limit, face.TextWidth)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		out = append(out, wrapped...)
	}
	return out
}

// height is the sheet height for n lines.
func (s *canvasSurface) height(n int) float64 {
	return math.Max(s.style.Height, 2*s.style.Padding+float64(n)*s.style.LineHeight)
}

// wrapText breaks text greedily at whitespace so that no line exceeds limit,
// unless a single word is wider than limit.
func wrapText(text string, limit float64, width func(string) float64) []string {
	var lines []string
	var line strings.Builder

	flush := func() {
		if trimmed := strings.TrimRightFunc(line.String(), unicode.IsSpace); trimmed != "" {
			lines = append(lines, trimmed)
		}
		line.Reset()
	}

	for _, tok := range paginate.Tokenize(text) {
		if strings.TrimSpace(tok) == "" {
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			continue
		}
		if line.Len() > 0 && width(line.String()+tok) > limit {
			flush()
		}
		line.WriteString(tok)
	}
	flush()
	return lines
}

func hline(w float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(w, 0)
	return p
}

func vline(h float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(0, h)
	return p
}
