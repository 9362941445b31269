package paperscan

import (
	"context"
	"errors"
	"image/color"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestCanvas(t *testing.T) *canvasSurface {
	t.Helper()
	s, err := newCanvasSurface()
	if err != nil {
		t.Fatalf("newCanvasSurface() error = %v", err)
	}
	return s
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	// Ten units per rune.
	width := func(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

	tests := []struct {
		name  string
		text  string
		limit float64
		want  []string
	}{
		{name: "fits", text: "aa bb", limit: 50, want: []string{"aa bb"}},
		{name: "wraps", text: "aa bb cc", limit: 50, want: []string{"aa bb", "cc"}},
		{name: "collapses spaces", text: "a   b", limit: 100, want: []string{"a b"}},
		{name: "long word alone", text: "supercalifragilistic ok", limit: 50, want: []string{"supercalifragilistic", "ok"}},
		{name: "leading space dropped", text: " aa", limit: 50, want: []string{"aa"}},
		{name: "empty", text: "", limit: 50, want: nil},
		{name: "blank", text: "   ", limit: 50, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := wrapText(tt.text, tt.limit, width)
			if !slices.Equal(got, tt.want) {
				t.Errorf("wrapText(%q, %g) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCanvasSurface_ContentHeight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestCanvas(t)

	if err := s.SetContent(ctx, ""); err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	empty, err := s.ContentHeight(ctx)
	if err != nil {
		t.Fatalf("ContentHeight() error = %v", err)
	}
	if empty != DefaultPaperHeight {
		t.Errorf("empty height = %g, want %g", empty, DefaultPaperHeight)
	}

	if err := s.SetContent(ctx, "<p>"+strings.Repeat("word ", 400)+"</p>"); err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	long, err := s.ContentHeight(ctx)
	if err != nil {
		t.Fatalf("ContentHeight() error = %v", err)
	}
	if long <= empty {
		t.Errorf("long content height = %g, want more than %g", long, empty)
	}

	// Line breaks keep their height.
	if err := s.SetContent(ctx, strings.Repeat("<br>", 40)); err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	breaks, err := s.ContentHeight(ctx)
	if err != nil {
		t.Fatalf("ContentHeight() error = %v", err)
	}
	if want := 2*DefaultPaperPadding + 40*DefaultPaperLineHeight; breaks != want {
		t.Errorf("height of 40 breaks = %g, want %g", breaks, want)
	}
}

func TestCanvasSurface_ApplyPaperStyles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestCanvas(t)

	for _, name := range []string{"plain", "lined", "grid"} {
		p := DefaultPaperStyle()
		p.Name = name
		if err := s.ApplyPaperStyles(ctx, *p); err != nil {
			t.Errorf("ApplyPaperStyles(%q) error = %v", name, err)
		}
	}

	p := DefaultPaperStyle()
	p.Name = "sepia"
	if err := s.ApplyPaperStyles(ctx, *p); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("ApplyPaperStyles(sepia) error = %v, want ErrStyleNotFound", err)
	}

	p = DefaultPaperStyle()
	p.Height = 300
	if err := s.ApplyPaperStyles(ctx, *p); err != nil {
		t.Fatalf("ApplyPaperStyles() error = %v", err)
	}
	if h, _ := s.ContentHeight(ctx); h != 300 {
		t.Errorf("height after style = %g, want 300", h)
	}
	if err := s.RemovePaperStyles(ctx); err != nil {
		t.Fatalf("RemovePaperStyles() error = %v", err)
	}
	if h, _ := s.ContentHeight(ctx); h != DefaultPaperHeight {
		t.Errorf("height after removal = %g, want %g", h, DefaultPaperHeight)
	}
}

func TestCanvasSurface_Capture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		scale float64
		style string
	}{
		{name: "plain at scale 1", scale: 1, style: "plain"},
		{name: "lined at scale 2", scale: 2, style: "lined"},
		{name: "grid at half scale", scale: 0.5, style: "grid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			s := newTestCanvas(t)
			p := DefaultPaperStyle()
			p.Name = tt.style
			if err := s.ApplyPaperStyles(ctx, *p); err != nil {
				t.Fatalf("ApplyPaperStyles() error = %v", err)
			}
			if err := s.SetContent(ctx, "<p>Dear diary</p>"); err != nil {
				t.Fatalf("SetContent() error = %v", err)
			}

			img, err := s.Capture(ctx, CaptureOptions{Scale: tt.scale})
			if err != nil {
				t.Fatalf("Capture() error = %v", err)
			}
			b := img.Bounds()
			wantW, wantH := int(DefaultPaperWidth*tt.scale), int(DefaultPaperHeight*tt.scale)
			if abs(b.Dx()-wantW) > 1 || abs(b.Dy()-wantH) > 1 {
				t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
			}
		})
	}
}

func TestCanvasSurface_CaptureShadows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestCanvas(t)
	p := DefaultPaperStyle()
	p.Shadows = true
	p.ShadowAngle = 0
	if err := s.ApplyPaperStyles(ctx, *p); err != nil {
		t.Fatalf("ApplyPaperStyles() error = %v", err)
	}

	img, err := s.Capture(ctx, CaptureOptions{Scale: 1})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	b := img.Bounds()
	top := color.NRGBAModel.Convert(img.At(b.Dx()/2, b.Min.Y+1)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(img.At(b.Dx()/2, b.Max.Y-2)).(color.NRGBA)
	if bottom.R >= top.R {
		t.Errorf("bottom R = %d, top R = %d, want a darker bottom at 0deg", bottom.R, top.R)
	}
}

func TestCanvasSurface_HasImages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestCanvas(t)

	if err := s.SetContent(ctx, `<p>see <img src="a.png"></p>`); err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	if ok, err := s.HasImages(ctx); err != nil || !ok {
		t.Errorf("HasImages() = %v, %v, want true", ok, err)
	}
	if err := s.SetContent(ctx, "<p>text</p>"); err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	if ok, _ := s.HasImages(ctx); ok {
		t.Error("HasImages() = true for text")
	}
}

func TestCanvasSurface_Closed(t *testing.T) {
	t.Parallel()

	s := newTestCanvas(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ctx := context.Background()
	if err := s.SetContent(ctx, "x"); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("SetContent() error = %v, want ErrSurfaceClosed", err)
	}
	if _, err := s.Capture(ctx, CaptureOptions{}); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("Capture() error = %v, want ErrSurfaceClosed", err)
	}
}

func TestSession_Generate_CanvasSurface(t *testing.T) {
	t.Parallel()

	s, err := NewSession(WithSurfaceKind(SurfaceCanvas))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	result, err := s.Generate(context.Background(), Input{
		Content: strings.Repeat("All work and no play makes a dull note.\n", 60),
		Format:  FormatText,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Pages < 2 {
		t.Errorf("Pages = %d, want the long note split", result.Pages)
	}
	for _, img := range s.Collection().Images() {
		if dy := img.Bitmap.Bounds().Dy(); dy > int(DefaultPaperHeight)+1 {
			t.Errorf("page %d height = %d, want at most the sheet height", img.Page, dy)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
