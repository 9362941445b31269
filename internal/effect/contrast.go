// Package effect implements post-rasterization pixel effects.
package effect

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ErrInvalidLevel indicates a contrast level outside [0, 1].
var ErrInvalidLevel = errors.New("contrast level must be between 0 and 1")

// DefaultScannerLevel is the contrast level used by the scanner effect.
const DefaultScannerLevel = 0.55

// Validate checks that level is within [0, 1].
func Validate(level float64) error {
	if math.IsNaN(level) || level < 0 || level > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidLevel, level)
	}
	return nil
}

// Factor returns the channel multiplier for a contrast level in [0, 1].
// Level 0 gives a factor just under 1; the factor grows without bound as
// the level approaches 1.
func Factor(level float64) float64 {
	c := level * 255
	return (c + 255) / (255.01 - c)
}

// Contrast returns a copy of src with the contrast of its color channels
// raised by level. Alpha is left untouched.
func Contrast(src image.Image, level float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	ContrastInPlace(dst, level)
	return dst
}

// ContrastInPlace applies the contrast transform directly to img.
func ContrastInPlace(img *image.NRGBA, level float64) {
	var lut [256]uint8
	f := Factor(level)
	for v := range lut {
		lut[v] = clamp(f*(float64(v)-128) + 128)
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			row[i] = lut[row[i]]
			row[i+1] = lut[row[i+1]]
			row[i+2] = lut[row[i+2]]
		}
	}
}

// clamp rounds v to the nearest integer and limits it to a valid channel value.
func clamp(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
