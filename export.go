package paperscan

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"github.com/alnah/go-paperscan/internal/fileutil"
	"github.com/alnah/go-paperscan/internal/pdfexport"
)

// pdfCreator is written into the PDF document information.
const pdfCreator = "paperscan"

// WritePDF writes the collection as a PDF with one page per image, in
// collection order. Empty slots are skipped. Each page keeps the physical
// size it had on screen, whatever scale it was captured at.
// Returns ErrNoImages when the collection has no image.
func (s *Session) WritePDF(w io.Writer) error {
	return pdfexport.Write(w, pdfPages(s.collection.Images()), pdfexport.Meta{
		Title:   s.cfg.pdfTitle,
		Author:  s.cfg.pdfAuthor,
		Creator: pdfCreator,
		DPI:     pdfexport.DefaultDPI * s.cfg.scale,
	})
}

// pdfPages maps collection images to PDF pages. An image without a capture
// scale falls back to the document DPI.
func pdfPages(images []Image) []pdfexport.Page {
	pages := make([]pdfexport.Page, 0, len(images))
	for _, img := range images {
		if img.IsEmpty() {
			continue
		}
		var dpi float64
		if img.Scale > 0 {
			dpi = pdfexport.DefaultDPI * img.Scale
		}
		pages = append(pages, pdfexport.Page{Bitmap: img.Bitmap, DPI: dpi})
	}
	return pages
}

// WritePNGs writes every image to dir as prefix-001.png, prefix-002.png, ...
// in collection order, skipping empty slots, and returns the written paths.
// Returns ErrNoImages when the collection has no image.
func (s *Session) WritePNGs(dir, prefix string) ([]string, error) {
	bitmaps := s.collection.Bitmaps()
	if len(bitmaps) == 0 {
		return nil, ErrNoImages
	}
	if prefix == "" {
		prefix = "page"
	}

	paths := make([]string, 0, len(bitmaps))
	for i, bmp := range bitmaps {
		path := filepath.Join(dir, fmt.Sprintf("%s-%03d.png", prefix, i+1))
		if err := writePNG(path, bmp); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writePNG encodes img to path.
func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
