package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/config"
	"github.com/alnah/go-paperscan/internal/fileutil"
)

// renderParams groups parameters shared across batch, file and session rendering.
type renderParams struct {
	opts      []paperscan.Option
	input     paperscan.Input  // template; Content, Format and SourceDir are set per document
	format    paperscan.Format // forced format, empty = from file extension
	png       bool
	pngPrefix string
	noPDF     bool
	quiet     bool
	verbose   bool
}

// buildRenderParams converts a validated config into session options and an input template.
func buildRenderParams(cfg *config.Config, timeout time.Duration, env *Environment) (*renderParams, error) {
	surface, err := paperscan.ParseSurfaceKind(cfg.Render.Surface)
	if err != nil {
		return nil, err
	}
	effect, err := paperscan.ParseEffect(cfg.Render.Effect)
	if err != nil {
		return nil, err
	}

	var format paperscan.Format
	if cfg.Input.Format != "" {
		if format, err = paperscan.ParseFormat(cfg.Input.Format); err != nil {
			return nil, err
		}
	}

	paper, css, err := buildPaperStyle(cfg, surface, env.AssetLoader)
	if err != nil {
		return nil, err
	}

	opts := []paperscan.Option{
		paperscan.WithSurfaceKind(surface),
		paperscan.WithPaper(paper),
		paperscan.WithMaxHeight(cfg.Render.MaxHeight),
		paperscan.WithPDFInfo(cfg.Output.Title, cfg.Output.Author),
		paperscan.WithBrowserBin(cfg.Browser.Bin),
		paperscan.WithNoSandbox(cfg.Browser.NoSandbox),
	}
	if cfg.Render.Scale != 0 {
		opts = append(opts, paperscan.WithScale(cfg.Render.Scale))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, paperscan.WithAssetPath(cfg.Assets.BasePath))
	}
	if css != "" {
		opts = append(opts, paperscan.WithCSS(css))
	}
	if timeout > 0 {
		opts = append(opts, paperscan.WithTimeout(timeout))
	}

	input := paperscan.Input{
		Effect:      effect,
		Contrast:    cfg.Render.Contrast,
		ScrollX:     cfg.Render.ScrollX,
		ScrollY:     cfg.Render.ScrollY,
		CrossOrigin: cfg.Render.CrossOrigin,
	}
	if cfg.Render.FixedAngle {
		angle := cfg.Render.ShadowAngle
		input.ShadowAngle = &angle
	}

	return &renderParams{
		opts:      opts,
		input:     input,
		format:    format,
		png:       cfg.Output.PNG,
		pngPrefix: cfg.Output.PNGPrefix,
		noPDF:     cfg.Output.NoPDF,
	}, nil
}

// buildPaperStyle resolves the sheet style and any CSS file it points to.
// A style containing a path separator is read as a CSS file and layered on
// the plain sheet; a name must resolve through the asset loader.
func buildPaperStyle(cfg *config.Config, surface paperscan.SurfaceKind, loader paperscan.AssetLoader) (*paperscan.PaperStyle, string, error) {
	paper := paperscan.DefaultPaperStyle()
	var css string

	style := cfg.Paper.Style
	switch {
	case style == "":
	case fileutil.IsFilePath(style):
		if surface == paperscan.SurfaceCanvas {
			return nil, "", fmt.Errorf("%w: %s", errCanvasStyle, style)
		}
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided style path
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		css = string(content)
	default:
		if cfg.Assets.BasePath != "" {
			custom, err := paperscan.NewAssetLoader(cfg.Assets.BasePath)
			if err != nil {
				return nil, "", err
			}
			loader = custom
		}
		if _, err := loader.LoadStyle(style); err != nil {
			if cfg.Assets.BasePath != "" && errors.Is(err, paperscan.ErrStyleNotFound) {
				return nil, "", fmt.Errorf("%w (in %s: %s)", err, cfg.Assets.BasePath, strings.Join(paperscan.AvailableStyles(loader), ", "))
			}
			return nil, "", err
		}
		if surface == paperscan.SurfaceCanvas && !slices.Contains(paperscan.StyleNames(), style) {
			return nil, "", fmt.Errorf("%w: %s", errCanvasStyle, style)
		}
		paper.Name = style
	}

	if cfg.Paper.Width != 0 {
		paper.Width = cfg.Paper.Width
	}
	if cfg.Paper.Height != 0 {
		paper.Height = cfg.Paper.Height
	}
	if cfg.Paper.Padding != 0 {
		paper.Padding = cfg.Paper.Padding
	}
	if cfg.Paper.FontSize != 0 {
		paper.FontSize = cfg.Paper.FontSize
	}
	if cfg.Paper.LineHeight != 0 {
		paper.LineHeight = cfg.Paper.LineHeight
	}
	if cfg.Paper.Ink != "" {
		paper.Ink = cfg.Paper.Ink
	}
	paper.Margin = cfg.Paper.Margin

	if err := paper.Validate(); err != nil {
		return nil, "", err
	}
	return paper, css, nil
}
