package paperscan

import (
	"errors"

	"github.com/alnah/go-paperscan/internal/assets"
	"github.com/alnah/go-paperscan/internal/effect"
	"github.com/alnah/go-paperscan/internal/paginate"
	"github.com/alnah/go-paperscan/internal/pdfexport"
)

// Sentinel errors for library operations.
var (
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrConversion     = errors.New("page conversion failed")
	ErrNilSurface     = errors.New("render surface is nil")
	ErrBusy           = errors.New("generation already in progress")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSurfaceClosed  = errors.New("render surface is closed")
	ErrPoolClosed     = errors.New("session pool is closed")

	// ErrMeasure wraps failures of the height oracle during measuring or pagination.
	ErrMeasure = paginate.ErrMeasure

	// Input validation errors.
	ErrInvalidScale    = errors.New("invalid scale")
	ErrInvalidContrast = effect.ErrInvalidLevel
	ErrInvalidEffect   = errors.New("invalid effect")
	ErrInvalidFormat   = errors.New("invalid content format")
	ErrInvalidPaper    = errors.New("invalid paper style")
	ErrInvalidSurface  = errors.New("invalid surface kind")

	// Export errors.
	ErrNoImages  = pdfexport.ErrNoImages
	ErrPDFExport = pdfexport.ErrPDFExport

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
