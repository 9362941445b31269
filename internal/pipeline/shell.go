package pipeline

import "strings"

// InjectCSS inserts a <style> block into a shell document.
// Tries </head> first, then after <body>, then prepends.
// CSS content is sanitized so it cannot close the style element.
func InjectCSS(document, css string) string {
	if css == "" {
		return document
	}

	styleBlock := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(document)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return document[:idx] + styleBlock + document[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(document[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return document[:pos] + styleBlock + document[pos:]
		}
	}

	return styleBlock + document
}

// sanitizeCSS escapes </ so user CSS cannot break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
