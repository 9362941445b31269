package paperscan

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

// nilBitmapSurface captures nothing without reporting an error.
type nilBitmapSurface struct {
	*mockSurface
}

func (nilBitmapSurface) Capture(context.Context, CaptureOptions) (image.Image, error) {
	return nil, nil
}

// graySurface captures an 8-bit grayscale bitmap.
type graySurface struct {
	*mockSurface
}

func (graySurface) Capture(context.Context, CaptureOptions) (image.Image, error) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 90
	}
	return img, nil
}

func TestRasterizer_Rasterize(t *testing.T) {
	t.Parallel()

	surface := newMockSurface(1, 514)
	r := &pageRasterizer{surface: surface, capture: CaptureOptions{Scale: 2, ScrollY: 3}}

	img, err := r.Rasterize(context.Background(), "<p>page</p>")
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if img.IsEmpty() {
		t.Fatal("Rasterize() returned an empty image")
	}
	if img.Scale != 2 {
		t.Errorf("Scale = %v, want the capture scale 2", img.Scale)
	}
	if surface.content != "<p>page</p>" {
		t.Errorf("surface content = %q, want the page markup", surface.content)
	}
	if len(surface.captures) != 1 || surface.captures[0] != r.capture {
		t.Errorf("captures = %+v, want %+v", surface.captures, r.capture)
	}
}

func TestRasterizer_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	failing := newMockSurface(1, 514)
	failing.failCapture = 1

	tests := []struct {
		name    string
		surface Surface
		ctx     context.Context
		wantErr error
	}{
		{name: "nil surface", surface: nil, ctx: context.Background(), wantErr: ErrNilSurface},
		{name: "canceled", surface: newMockSurface(1, 514), ctx: canceled, wantErr: context.Canceled},
		{name: "capture failure", surface: failing, ctx: context.Background(), wantErr: ErrConversion},
		{name: "nil bitmap", surface: nilBitmapSurface{newMockSurface(1, 514)}, ctx: context.Background(), wantErr: ErrConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &pageRasterizer{surface: tt.surface}
			img, err := r.Rasterize(tt.ctx, "x")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Rasterize() error = %v, want %v", err, tt.wantErr)
			}
			if !img.IsEmpty() {
				t.Error("Rasterize() returned a bitmap on failure")
			}
		})
	}
}

func TestRasterizer_ScannerEffect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		surface Surface
		before  uint8
	}{
		{name: "nrgba bitmap", surface: newMockSurface(1, 514), before: 100},
		{name: "gray bitmap", surface: graySurface{newMockSurface(1, 514)}, before: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &pageRasterizer{surface: tt.surface, effect: EffectScanner, contrast: 0.55}
			img, err := r.Rasterize(context.Background(), "x")
			if err != nil {
				t.Fatalf("Rasterize() error = %v", err)
			}

			got := color.NRGBAModel.Convert(img.Bitmap.At(0, 0)).(color.NRGBA)
			if got.R >= tt.before {
				t.Errorf("R = %d, want darker than %d", got.R, tt.before)
			}
			if got.A != 255 {
				t.Errorf("A = %d, want 255", got.A)
			}
		})
	}
}
