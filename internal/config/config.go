package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-paperscan/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxStyleLength     = 64   // "plain", "lined", custom names
	MaxInkLength       = 9    // "#rrggbbaa"
	MaxEffectLength    = 10   // "none", "shadows", "scanner"
	MaxSurfaceLength   = 10   // "chrome", "canvas"
	MaxTitleLength     = 200  // PDF title
	MaxAuthorLength    = 100  // PDF author
	MaxPNGPrefixLength = 64   // "page", "note"
)

// MaxConfigSize caps the size of a config file.
const MaxConfigSize = 1 << 20

// Numeric limits. Zero values mean "use the library default" and are accepted.
const (
	MinScale   = 0.25
	MaxScale   = 8.0
	MaxScroll  = 100000
	MaxTimeout = 10 * time.Minute
)

// ConfigDirName is the directory under os.UserConfigDir() searched for named configs.
const ConfigDirName = "go-paperscan"

var inkPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Config holds all configuration for page generation.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Paper   PaperConfig   `yaml:"paper"`
	Render  RenderConfig  `yaml:"render"`
	Browser BrowserConfig `yaml:"browser"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Format     string `yaml:"format"`     // "html", "markdown", "text" (empty = from extension)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	PNG        bool   `yaml:"png"`        // Also write one PNG per page
	PNGPrefix  string `yaml:"pngPrefix"`  // PNG file prefix (empty = input name)
	NoPDF      bool   `yaml:"noPdf"`      // Skip the PDF
	Title      string `yaml:"title"`      // PDF title metadata
	Author     string `yaml:"author"`     // PDF author metadata
}

// PaperConfig defines the sheet geometry. Zero values keep the defaults.
type PaperConfig struct {
	Style      string  `yaml:"style"`      // "plain", "lined", "grid" or a custom style
	Width      float64 `yaml:"width"`      // px
	Height     float64 `yaml:"height"`     // px, empty sheet
	Padding    float64 `yaml:"padding"`    // px
	FontSize   float64 `yaml:"fontSize"`   // px
	LineHeight float64 `yaml:"lineHeight"` // px
	Ink        string  `yaml:"ink"`        // hex color
	Margin     float64 `yaml:"margin"`     // px, 0 = no margin rule
}

// RenderConfig defines capture options.
type RenderConfig struct {
	Surface     string  `yaml:"surface"`     // "chrome" (default) or "canvas"
	Scale       float64 `yaml:"scale"`       // resolution multiplier (default 1)
	Effect      string  `yaml:"effect"`      // "none", "shadows", "scanner"
	Contrast    float64 `yaml:"contrast"`    // scanner level 0-1 (0 = default)
	ShadowAngle float64 `yaml:"shadowAngle"` // degrees, used when FixedAngle is true
	FixedAngle  bool    `yaml:"fixedAngle"`  // use ShadowAngle instead of a random angle
	CrossOrigin bool    `yaml:"crossOrigin"` // reload images with crossorigin="anonymous"
	ScrollX     int     `yaml:"scrollX"`     // capture offset, px
	ScrollY     int     `yaml:"scrollY"`     // capture offset, px
	MaxHeight   float64 `yaml:"maxHeight"`   // page budget, px (0 = empty sheet height)
}

// BrowserConfig defines headless Chrome options.
type BrowserConfig struct {
	Bin       string        `yaml:"bin"`       // Chrome binary (empty = ROD_BROWSER_BIN or managed)
	NoSandbox bool          `yaml:"noSandbox"` // Disable the sandbox (containers)
	Timeout   time.Duration `yaml:"timeout"`   // Page load timeout (e.g. "30s")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.pngPrefix", c.Output.PNGPrefix, MaxPNGPrefixLength},
		{"output.title", c.Output.Title, MaxTitleLength},
		{"output.author", c.Output.Author, MaxAuthorLength},
		{"paper.style", c.Paper.Style, MaxStyleLength},
		{"paper.ink", c.Paper.Ink, MaxInkLength},
		{"render.surface", c.Render.Surface, MaxSurfaceLength},
		{"render.effect", c.Render.Effect, MaxEffectLength},
		{"browser.bin", c.Browser.Bin, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Input.Format != "" {
		switch strings.ToLower(c.Input.Format) {
		case "html", "markdown", "text":
		default:
			return fmt.Errorf("%w: input.format %q (must be html, markdown, or text)", ErrInvalidValue, c.Input.Format)
		}
	}
	if strings.ContainsAny(c.Output.PNGPrefix, "/\\") {
		return fmt.Errorf("%w: output.pngPrefix %q must not contain path separators", ErrInvalidValue, c.Output.PNGPrefix)
	}
	if c.Output.NoPDF && !c.Output.PNG {
		return fmt.Errorf("%w: output.noPdf requires output.png", ErrInvalidValue)
	}

	if c.Paper.Ink != "" && !inkPattern.MatchString(c.Paper.Ink) {
		return fmt.Errorf("%w: paper.ink %q (must be a hex color like #0f1a45)", ErrInvalidValue, c.Paper.Ink)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"paper.width", c.Paper.Width},
		{"paper.height", c.Paper.Height},
		{"paper.padding", c.Paper.Padding},
		{"paper.fontSize", c.Paper.FontSize},
		{"paper.lineHeight", c.Paper.LineHeight},
		{"paper.margin", c.Paper.Margin},
		{"render.maxHeight", c.Render.MaxHeight},
	} {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidValue, f.name, f.value)
		}
	}

	if c.Render.Surface != "" {
		switch strings.ToLower(c.Render.Surface) {
		case "chrome", "canvas":
		default:
			return fmt.Errorf("%w: render.surface %q (must be chrome or canvas)", ErrInvalidValue, c.Render.Surface)
		}
	}
	if c.Render.Effect != "" {
		switch strings.ToLower(c.Render.Effect) {
		case "none", "shadows", "scanner":
		default:
			return fmt.Errorf("%w: render.effect %q (must be none, shadows, or scanner)", ErrInvalidValue, c.Render.Effect)
		}
	}
	if c.Render.Scale != 0 && (c.Render.Scale < MinScale || c.Render.Scale > MaxScale) {
		return fmt.Errorf("%w: render.scale must be between %.2f and %.0f, got %.2f", ErrInvalidValue, MinScale, MaxScale, c.Render.Scale)
	}
	if c.Render.Contrast < 0 || c.Render.Contrast > 1 {
		return fmt.Errorf("%w: render.contrast must be between 0 and 1, got %.2f", ErrInvalidValue, c.Render.Contrast)
	}
	if abs(c.Render.ScrollX) > MaxScroll || abs(c.Render.ScrollY) > MaxScroll {
		return fmt.Errorf("%w: render.scrollX/scrollY must be within ±%d", ErrInvalidValue, MaxScroll)
	}

	if c.Browser.Timeout < 0 || c.Browser.Timeout > MaxTimeout {
		return fmt.Errorf("%w: browser.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxTimeout, c.Browser.Timeout)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DefaultConfig returns a neutral configuration: every zero value defers to
// the library defaults.
func DefaultConfig() *Config {
	return &Config{
		Paper:  PaperConfig{Style: ""},
		Render: RenderConfig{Surface: "", Effect: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// decodeStrict unmarshals YAML into cfg, rejecting unknown fields.
func decodeStrict(data []byte, cfg *Config) error {
	switch {
	case len(bytes.TrimSpace(data)) == 0:
		return errors.New("empty file")
	case len(data) > MaxConfigSize:
		return fmt.Errorf("%d bytes exceeds limit of %d", len(data), MaxConfigSize)
	}
	return yaml.UnmarshalWithOptions(data, cfg, yaml.Strict())
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchPaths lists the files tried for a config name, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-paperscan/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
