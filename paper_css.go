package paperscan

import (
	"fmt"
	"strings"
)

// paperStyleElementID identifies the style element installed by ApplyPaperStyles.
const paperStyleElementID = "paperscan-style"

// shadowGradient is the overlay drawn by the shadows effect.
const shadowGradient = "linear-gradient(%.1fdeg, #0008, #0000)"

// buildPaperCSS generates the custom properties consumed by the surface shell,
// followed by the named style sheet.
func buildPaperCSS(p PaperStyle, styleCSS string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, `
/* Paper geometry */
:root {
  --paper-width: %s;
  --paper-height: %s;
  --paper-padding: %s;
  --paper-font-size: %s;
  --paper-line-height: %s;
  --paper-ink: %s;
  --paper-margin: %s;
`, px(p.Width), px(p.Height), px(p.Padding), px(p.FontSize), px(p.LineHeight), escapeCSSValue(p.Ink), px(p.Margin))

	if p.Shadows {
		fmt.Fprintf(&buf, "  --paper-overlay: "+shadowGradient+";\n", p.ShadowAngle)
	}
	buf.WriteString("}\n")

	if styleCSS != "" {
		buf.WriteString("\n")
		buf.WriteString(styleCSS)
	}
	return buf.String()
}

// px formats a length in CSS pixels.
func px(v float64) string {
	return fmt.Sprintf("%gpx", v)
}

// escapeCSSValue strips characters that could terminate a declaration.
// Paper colors are validated as hex, this guards custom callers.
func escapeCSSValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
