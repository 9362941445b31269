// Package pipeline prepares page markup before it reaches a render surface.
//
// This package handles the content side of generation:
//   - Markdown to HTML fragment conversion via Goldmark
//   - Plain text to markup (escaping, line breaks)
//   - Relative asset path rewriting to file:// URLs
//   - Markup inspection (embedded images, text blocks)
//   - Surface shell document rendering with paper CSS
//
// Measuring, pagination and rasterization are handled by the root paperscan
// package. This package never talks to a browser.
package pipeline
