package paperscan

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-paperscan/internal/assets"
	"github.com/alnah/go-paperscan/internal/effect"
)

// Format identifies how Input.Content is interpreted.
type Format string

// Content formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Effect is a visual treatment applied to every page.
type Effect string

// Page effects.
const (
	EffectNone    Effect = "none"
	EffectShadows Effect = "shadows"
	EffectScanner Effect = "scanner"
)

// Scale bounds for captures.
const (
	MinScale     = 0.25
	MaxScale     = 8.0
	DefaultScale = 1.0
)

// Paper geometry defaults in CSS pixels. DefaultPaperHeight is the height of
// an empty sheet and therefore the default page budget.
const (
	DefaultPaperWidth      = 420.0
	DefaultPaperHeight     = 514.0
	DefaultPaperPadding    = 16.0
	DefaultPaperFontSize   = 16.0
	DefaultPaperLineHeight = 24.0
	DefaultPaperInk        = "#0f1a45"
)

// Paper geometry bounds.
const (
	MinPaperWidth  = 100.0
	MaxPaperWidth  = 4000.0
	MinPaperHeight = 100.0
	MaxPaperHeight = 20000.0
	MinFontSize    = 4.0
	MaxFontSize    = 200.0
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// PaperStyle describes the sheet the content is written on.
type PaperStyle struct {
	Name       string  // paper style asset: "plain", "lined", "grid" or a custom one
	Width      float64 // px
	Height     float64 // px, height of the empty sheet
	Padding    float64 // px, all sides
	FontSize   float64 // px
	LineHeight float64 // px, also the ruling pitch
	Ink        string  // hex color
	Margin     float64 // px from the left edge, 0 disables the margin rule

	// Shadows draws a gradient overlay across the sheet at ShadowAngle degrees.
	Shadows     bool
	ShadowAngle float64
}

// DefaultPaperStyle returns a plain sheet with default geometry.
func DefaultPaperStyle() *PaperStyle {
	return &PaperStyle{
		Name:       assets.DefaultStyleName,
		Width:      DefaultPaperWidth,
		Height:     DefaultPaperHeight,
		Padding:    DefaultPaperPadding,
		FontSize:   DefaultPaperFontSize,
		LineHeight: DefaultPaperLineHeight,
		Ink:        DefaultPaperInk,
	}
}

// Validate checks that paper geometry is usable.
// Returns nil if p is nil (nil means use defaults).
func (p *PaperStyle) Validate() error {
	if p == nil {
		return nil
	}

	if err := assets.ValidateAssetName(p.Name); err != nil {
		return fmt.Errorf("%w: style: %v", ErrInvalidPaper, err)
	}
	if p.Width < MinPaperWidth || p.Width > MaxPaperWidth {
		return fmt.Errorf("%w: width %.0f (must be between %.0f and %.0f)", ErrInvalidPaper, p.Width, MinPaperWidth, MaxPaperWidth)
	}
	if p.Height < MinPaperHeight || p.Height > MaxPaperHeight {
		return fmt.Errorf("%w: height %.0f (must be between %.0f and %.0f)", ErrInvalidPaper, p.Height, MinPaperHeight, MaxPaperHeight)
	}
	if p.Padding < 0 || p.Padding*2 >= p.Width || p.Padding*2 >= p.Height {
		return fmt.Errorf("%w: padding %.0f leaves no room for content", ErrInvalidPaper, p.Padding)
	}
	if p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font size %.1f (must be between %.0f and %.0f)", ErrInvalidPaper, p.FontSize, MinFontSize, MaxFontSize)
	}
	if p.LineHeight < p.FontSize/2 || p.LineHeight > p.Height {
		return fmt.Errorf("%w: line height %.1f", ErrInvalidPaper, p.LineHeight)
	}
	if !hexColorPattern.MatchString(p.Ink) {
		return fmt.Errorf("%w: ink %q (must be a hex color like #0f1a45)", ErrInvalidPaper, p.Ink)
	}
	if p.Margin < 0 || p.Margin >= p.Width-2*p.Padding {
		return fmt.Errorf("%w: margin %.0f", ErrInvalidPaper, p.Margin)
	}
	return nil
}

// contentWidth is the width available to text inside the padding and margin.
func (p *PaperStyle) contentWidth() float64 {
	return p.Width - 2*p.Padding - p.Margin
}

// Input contains generation parameters.
type Input struct {
	Content   string      // document content (required)
	Format    Format      // "html" (default), "markdown" or "text"
	SourceDir string      // base for relative image paths (optional)
	Paper     *PaperStyle // sheet style (optional, nil = session default)

	Effect   Effect  // "none" (default), "shadows" or "scanner"
	Contrast float64 // scanner contrast level in [0,1]; 0 uses effect.DefaultScannerLevel

	// ShadowAngle overrides the random gradient angle of the shadows effect.
	ShadowAngle *float64

	Scale       float64 // capture scale (0 = session default)
	ScrollX     int     // capture offset in px
	ScrollY     int     // capture offset in px
	CrossOrigin bool    // load images with crossorigin="anonymous" before capture
}

// Validate checks that input fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their values validated earlier by config.Validate().
func (in Input) Validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return ErrEmptyContent
	}
	switch in.Format {
	case "", FormatHTML, FormatMarkdown, FormatText:
	default:
		return fmt.Errorf("%w: %q (must be html, markdown, or text)", ErrInvalidFormat, in.Format)
	}
	switch in.Effect {
	case "", EffectNone, EffectShadows, EffectScanner:
	default:
		return fmt.Errorf("%w: %q (must be none, shadows, or scanner)", ErrInvalidEffect, in.Effect)
	}
	if err := effect.Validate(in.Contrast); err != nil {
		return err
	}
	if in.Scale != 0 && (in.Scale < MinScale || in.Scale > MaxScale) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidScale, in.Scale, MinScale, MaxScale)
	}
	return in.Paper.Validate()
}

// ParseFormat maps a file extension or format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "html", "htm":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// ParseEffect maps a name to an Effect. Empty means EffectNone.
func ParseEffect(s string) (Effect, error) {
	switch Effect(strings.ToLower(s)) {
	case "", EffectNone:
		return EffectNone, nil
	case EffectShadows:
		return EffectShadows, nil
	case EffectScanner:
		return EffectScanner, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEffect, s)
}

// Result describes a completed generation.
type Result struct {
	Pages     int           // images appended to the collection
	Oversized int           // pages holding a single token taller than the sheet
	Warnings  []string      // non-fatal issues, also written to the warning writer
	Duration  time.Duration // wall time of the generation
}
