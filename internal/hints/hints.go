// Package hints turns common failures into one-line suggestions, formatted
// as "\n  hint: <text>" so they can be appended to an error message. It also
// detects the CI and container signals those suggestions depend on.
package hints

import "strings"

// ForBrowserConnect suggests the ROD_* variables that usually fix a
// failed Chrome launch in rt.
func ForBrowserConnect(rt Runtime) string {
	var hints []string
	if rt.SandboxUnsafe() {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if rt.BrowserBin == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a specific Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-paperscan/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-paperscan) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-paperscan") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForNoBrowser returns a hint about rendering without Chrome.
func ForNoBrowser() string {
	return format("use --surface canvas to render plain text without a browser")
}

// ForCanvasStyle returns hints for styles the canvas surface cannot draw.
func ForCanvasStyle() string {
	return format("the canvas surface draws plain, lined and grid only; use --surface chrome for custom styles")
}

// ForSplitImages returns hints for images cut across pages.
func ForSplitImages() string {
	return format("raise --height or --max-height to keep images on one page")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
