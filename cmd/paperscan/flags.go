package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// shadowAngleSentinel detects if --shadow-angle was explicitly set.
// Since 0 is a valid angle, we use an out-of-range sentinel.
// Valid range is 0 to 360; -999 is safely outside this range.
const shadowAngleSentinel = -999.0

// errHelp is returned by the parsers when -h or --help is given.
var errHelp = flag.ErrHelp

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination flags.
type outputFlags struct {
	png       bool
	pngPrefix string
	noPDF     bool
	title     string
	author    string
}

// paperFlags holds sheet geometry flags.
type paperFlags struct {
	style      string // Name or path for a paper style
	width      float64
	height     float64
	padding    float64
	fontSize   float64
	lineHeight float64
	ink        string
	margin     float64
}

// captureFlags holds rendering flags.
type captureFlags struct {
	surface     string
	scale       float64
	effect      string
	contrast    float64
	shadowAngle float64
	crossOrigin bool
	scrollX     int
	scrollY     int
	maxHeight   float64
}

// browserFlags holds headless Chrome flags.
type browserFlags struct {
	bin       string
	noSandbox bool
	timeout   string
}

// renderFlags holds all flags for the render and session commands.
type renderFlags struct {
	common    commonFlags
	output    string
	workers   int
	format    string
	assetPath string
	out       outputFlags
	paper     paperFlags
	capture   captureFlags
	browser   browserFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.png, "png", false, "also write one PNG per page")
	fs.StringVar(&f.pngPrefix, "png-prefix", "", "PNG file prefix (default: input name)")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "skip the PDF (requires --png)")
	fs.StringVar(&f.title, "title", "", "PDF title")
	fs.StringVar(&f.author, "author", "", "PDF author")
}

// addPaperFlags adds sheet geometry flags to a FlagSet.
func addPaperFlags(fs *flag.FlagSet, f *paperFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "paper style name or CSS file path")
	fs.Float64Var(&f.width, "width", 0, "sheet width in px")
	fs.Float64Var(&f.height, "height", 0, "empty sheet height in px")
	fs.Float64Var(&f.padding, "padding", 0, "sheet padding in px")
	fs.Float64Var(&f.fontSize, "font-size", 0, "font size in px")
	fs.Float64Var(&f.lineHeight, "line-height", 0, "line height in px")
	fs.StringVar(&f.ink, "ink", "", "ink color (hex)")
	fs.Float64Var(&f.margin, "margin", 0, "margin rule offset in px")
}

// addCaptureFlags adds rendering flags to a FlagSet.
func addCaptureFlags(fs *flag.FlagSet, f *captureFlags) {
	fs.StringVar(&f.surface, "surface", "", "render surface: chrome, canvas")
	fs.Float64Var(&f.scale, "scale", 0, "resolution multiplier (0.25-8)")
	fs.StringVarP(&f.effect, "effect", "e", "", "effect: none, shadows, scanner")
	fs.Float64Var(&f.contrast, "contrast", 0, "scanner contrast level (0-1)")
	fs.Float64Var(&f.shadowAngle, "shadow-angle", shadowAngleSentinel, "fixed shadow angle in degrees (default: random)")
	fs.BoolVar(&f.crossOrigin, "cross-origin", false, "load images with crossorigin=anonymous")
	fs.IntVar(&f.scrollX, "scroll-x", 0, "horizontal capture offset in px")
	fs.IntVar(&f.scrollY, "scroll-y", 0, "vertical capture offset in px")
	fs.Float64Var(&f.maxHeight, "max-height", 0, "page height budget in px (0 = empty sheet)")
}

// addBrowserFlags adds headless Chrome flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome binary path")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
}

// newRenderFlagSet registers the flags shared by render and session.
func newRenderFlagSet(name string, f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.format, "format", "f", "", "content format: html, markdown, text (default: from extension)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding built-in styles")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.out)
	addPaperFlags(fs, &f.paper)
	addCaptureFlags(fs, &f.capture)
	addBrowserFlags(fs, &f.browser)
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet("render", f)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseSessionFlags parses session command flags.
func parseSessionFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet("session", f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
