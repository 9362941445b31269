package paperscan

import (
	"context"
	"fmt"
	"image"

	"github.com/alnah/go-paperscan/internal/effect"
)

// pageRasterizer turns page markup into a bitmap on a Surface.
type pageRasterizer struct {
	surface  Surface
	capture  CaptureOptions
	effect   Effect
	contrast float64
}

// Rasterize writes markup into the surface, resets the scroll position and
// captures the sheet. The scanner effect is applied to the captured pixels.
// Nothing is returned on failure.
func (r *pageRasterizer) Rasterize(ctx context.Context, markup string) (Image, error) {
	if r.surface == nil {
		return Image{}, ErrNilSurface
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	if err := r.surface.SetContent(ctx, markup); err != nil {
		return Image{}, fmt.Errorf("%w: writing page: %v", ErrConversion, err)
	}
	if err := r.surface.ResetScroll(ctx); err != nil {
		return Image{}, fmt.Errorf("%w: resetting scroll: %v", ErrConversion, err)
	}

	bitmap, err := r.surface.Capture(ctx, r.capture)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if bitmap == nil {
		return Image{}, fmt.Errorf("%w: surface returned no bitmap", ErrConversion)
	}

	if r.effect == EffectScanner {
		bitmap = applyScanner(bitmap, r.contrast)
	}
	return Image{Bitmap: bitmap, Scale: r.capture.Scale}, nil
}

// applyScanner raises contrast, reusing the bitmap when it is already NRGBA.
func applyScanner(src image.Image, level float64) image.Image {
	if nrgba, ok := src.(*image.NRGBA); ok {
		effect.ContrastInPlace(nrgba, level)
		return nrgba
	}
	return effect.Contrast(src, level)
}
