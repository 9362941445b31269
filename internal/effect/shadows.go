package effect

import (
	"image"
	"math"
	"math/rand/v2"
)

// ShadowOpacity is the alpha of the dark end of the shadow gradient (#0008).
const ShadowOpacity = float64(0x88) / 255

// RandomAngle returns a gradient angle in [0, 360) degrees.
func RandomAngle() float64 {
	return rand.Float64() * 360
}

// Shadows darkens img in place along a linear gradient that starts opaque at
// ShadowOpacity and fades to transparent. The angle follows CSS
// linear-gradient: 0deg runs bottom to top, 90deg left to right.
func Shadows(img *image.NRGBA, angle float64) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return
	}

	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(w*dx) + math.Abs(h*dy)
	cx, cy := w/2, h/2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		py := float64(y-b.Min.Y) + 0.5 - cy
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i, x := 0, 0; i+3 < len(row); i, x = i+4, x+1 {
			px := float64(x) + 0.5 - cx
			t := (px*dx+py*dy)/length + 0.5
			keep := 1 - ShadowOpacity*(1-math.Max(0, math.Min(1, t)))
			row[i] = uint8(math.Round(float64(row[i]) * keep))
			row[i+1] = uint8(math.Round(float64(row[i+1]) * keep))
			row[i+2] = uint8(math.Round(float64(row[i+2]) * keep))
		}
	}
}
