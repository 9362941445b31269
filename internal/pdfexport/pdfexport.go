// Package pdfexport assembles raster images into a PDF with one page per
// image, in order.
package pdfexport

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"

	"codeberg.org/go-pdf/fpdf"
)

// Sentinel errors for PDF export.
var (
	ErrNoImages  = errors.New("no images to export")
	ErrPDFExport = errors.New("PDF export failed")
)

// DefaultDPI maps image pixels to PDF points (CSS pixels are 96 per inch).
const DefaultDPI = 96

// pointsPerInch is the PDF user space unit.
const pointsPerInch = 72

// Meta carries optional document information.
type Meta struct {
	Title   string
	Author  string
	Creator string
	DPI     float64 // fallback pixels per inch, 0 = DefaultDPI
}

// Page is one image with the resolution it was captured at.
type Page struct {
	Bitmap image.Image
	DPI    float64 // pixels per inch, 0 = Meta.DPI
}

// Write renders pages into a PDF written to w. Pages without a bitmap are
// skipped. Each page has exactly the size of its bitmap at its own DPI.
func Write(w io.Writer, pages []Page, meta Meta) error {
	fallback := meta.DPI
	if fallback <= 0 {
		fallback = DefaultDPI
	}

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	if meta.Title != "" {
		doc.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		doc.SetAuthor(meta.Author, true)
	}
	if meta.Creator != "" {
		doc.SetCreator(meta.Creator, true)
	}

	written := 0
	for i, page := range pages {
		img := page.Bitmap
		if img == nil {
			continue
		}
		dpi := page.DPI
		if dpi <= 0 {
			dpi = fallback
		}
		scale := pointsPerInch / dpi

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("%w: encoding page %d: %v", ErrPDFExport, i+1, err)
		}

		b := img.Bounds()
		wd := float64(b.Dx()) * scale
		ht := float64(b.Dy()) * scale

		// Portrait keeps Wd/Ht as given; landscape would swap them.
		doc.AddPageFormat("P", fpdf.SizeType{Wd: wd, Ht: ht})

		name := "page-" + strconv.Itoa(i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.ImageOptions(name, 0, 0, wd, ht, false, opts, 0, "")
		if err := doc.Error(); err != nil {
			return fmt.Errorf("%w: page %d: %v", ErrPDFExport, i+1, err)
		}
		written++
	}

	if written == 0 {
		return ErrNoImages
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrPDFExport, err)
	}
	return nil
}
