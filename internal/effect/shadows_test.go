package effect

import (
	"image"
	"image/color"
	"testing"
)

func white(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestShadows_Direction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		angle        float64
		dark, bright image.Point
	}{
		{name: "0deg darkens the bottom", angle: 0, dark: image.Pt(10, 19), bright: image.Pt(10, 0)},
		{name: "90deg darkens the left", angle: 90, dark: image.Pt(0, 10), bright: image.Pt(19, 10)},
		{name: "180deg darkens the top", angle: 180, dark: image.Pt(10, 0), bright: image.Pt(10, 19)},
		{name: "270deg darkens the right", angle: 270, dark: image.Pt(19, 10), bright: image.Pt(0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			img := white(20, 20)
			Shadows(img, tt.angle)

			d := img.NRGBAAt(tt.dark.X, tt.dark.Y)
			b := img.NRGBAAt(tt.bright.X, tt.bright.Y)
			if d.R >= b.R {
				t.Errorf("pixel %v = %d, want darker than %v = %d", tt.dark, d.R, tt.bright, b.R)
			}
			if b.R < 240 {
				t.Errorf("bright end = %d, want close to white", b.R)
			}
			if d.R > 140 {
				t.Errorf("dark end = %d, want close to %d", d.R, int(255*(1-ShadowOpacity)))
			}
		})
	}
}

func TestShadows_KeepsAlpha(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: uint8(60 * x)})
		}
	}

	Shadows(img, 45)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a := img.NRGBAAt(x, y).A; a != uint8(60*x) {
				t.Fatalf("alpha at (%d,%d) = %d, want %d", x, y, a, 60*x)
			}
		}
	}
}

func TestShadows_EmptyImage(t *testing.T) {
	t.Parallel()

	Shadows(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 30)
}

func TestRandomAngle_Range(t *testing.T) {
	t.Parallel()

	for range 100 {
		if a := RandomAngle(); a < 0 || a >= 360 {
			t.Fatalf("RandomAngle() = %g, want [0, 360)", a)
		}
	}
}
