package effect

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*w + y) % 256)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 255 - v, B: v / 2, A: uint8(100 + y%156)})
		}
	}
	return img
}

func TestFactor(t *testing.T) {
	t.Parallel()

	if f := Factor(0); math.Abs(f-1) > 1e-4 {
		t.Errorf("Factor(0) = %g, want ~1", f)
	}
	if f := Factor(0.5); f <= 1 {
		t.Errorf("Factor(0.5) = %g, want > 1", f)
	}
	if f := Factor(1); f < 50000 {
		t.Errorf("Factor(1) = %g, want a very large factor", f)
	}
	prev := Factor(0)
	for _, level := range []float64{0.1, 0.3, 0.55, 0.8, 0.99} {
		f := Factor(level)
		if f <= prev {
			t.Errorf("Factor(%g) = %g, not increasing", level, f)
		}
		prev = f
	}
}

func TestContrast_ZeroLevelIsIdentity(t *testing.T) {
	t.Parallel()

	src := gradient(32, 32)
	got := Contrast(src, 0)
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, got.Pix[i], src.Pix[i])
		}
	}
}

func TestContrast_AlphaUntouched(t *testing.T) {
	t.Parallel()

	src := gradient(16, 16)
	got := Contrast(src, 0.7)
	for i := 3; i < len(src.Pix); i += 4 {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("alpha at %d = %d, want %d", i, got.Pix[i], src.Pix[i])
		}
	}
}

func TestContrast_ClampsAtHighLevel(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 127, B: 200, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 129, G: 250, B: 0, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	got := Contrast(src, 0.999)

	want := []color.NRGBA{
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 128, G: 128, B: 128, A: 255},
	}
	for x, w := range want {
		if c := got.NRGBAAt(x, 0); c != w {
			t.Errorf("pixel %d = %v, want %v", x, c, w)
		}
	}
}

func TestContrast_PushesAwayFromMidpoint(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 100, G: 160, B: 128, A: 255})

	c := Contrast(src, DefaultScannerLevel).NRGBAAt(0, 0)
	if c.R >= 100 {
		t.Errorf("dark channel R = %d, want darker than 100", c.R)
	}
	if c.G <= 160 {
		t.Errorf("light channel G = %d, want lighter than 160", c.G)
	}
	if c.B != 128 {
		t.Errorf("midpoint channel B = %d, want 128", c.B)
	}
}

func TestContrast_TwiceIsNotDoubleLevel(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 110, G: 140, B: 120, A: 255})

	twice := Contrast(Contrast(src, 0.2), 0.2).NRGBAAt(0, 0)
	doubled := Contrast(src, 0.4).NRGBAAt(0, 0)
	if twice == doubled {
		t.Errorf("applying 0.2 twice equals 0.4 once (%v)", twice)
	}
}

func TestContrast_DoesNotModifySource(t *testing.T) {
	t.Parallel()

	src := gradient(8, 8)
	before := append([]uint8(nil), src.Pix...)
	_ = Contrast(src, 0.9)
	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatalf("source modified at byte %d", i)
		}
	}
}

func TestContrast_SubImageBounds(t *testing.T) {
	t.Parallel()

	src := gradient(10, 10)
	sub := src.SubImage(image.Rect(2, 3, 7, 9)).(*image.NRGBA)
	got := Contrast(sub, 0.5)
	if got.Bounds() != sub.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), sub.Bounds())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   float64
		wantErr bool
	}{
		{0, false},
		{0.55, false},
		{1, false},
		{-0.01, true},
		{1.01, true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		err := Validate(tt.level)
		if tt.wantErr && !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("Validate(%g) = %v, want ErrInvalidLevel", tt.level, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Validate(%g) = %v, want nil", tt.level, err)
		}
	}
}
