package pipeline

import (
	"html"
	"regexp"
	"strings"
)

var (
	crlfOrCR       = regexp.MustCompile(`\r\n?`)
	trailingBlanks = regexp.MustCompile(`\n+$`)
)

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// TextToMarkup turns plain text into markup that renders the same way a
// typed note would: HTML special characters are escaped and every line
// break becomes <br>. Trailing blank lines are dropped.
func TextToMarkup(text string) string {
	text = NormalizeLineEndings(text)
	text = trailingBlanks.ReplaceAllString(text, "")
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>\n")
}
