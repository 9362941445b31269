package main

import (
	"errors"
	"os"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/config"
)

// Exit codes for the paperscan CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful rendering
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser, measurement, or capture errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and conversion errors (exit 4)
	if errors.Is(err, paperscan.ErrBrowserConnect) ||
		errors.Is(err, paperscan.ErrPageCreate) ||
		errors.Is(err, paperscan.ErrPageLoad) ||
		errors.Is(err, paperscan.ErrMeasure) ||
		errors.Is(err, paperscan.ErrConversion) ||
		errors.Is(err, paperscan.ErrPDFExport) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, errOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, paperscan.ErrEmptyContent) ||
		errors.Is(err, paperscan.ErrInvalidScale) ||
		errors.Is(err, paperscan.ErrInvalidContrast) ||
		errors.Is(err, paperscan.ErrInvalidEffect) ||
		errors.Is(err, paperscan.ErrInvalidFormat) ||
		errors.Is(err, paperscan.ErrInvalidPaper) ||
		errors.Is(err, paperscan.ErrInvalidSurface) ||
		errors.Is(err, paperscan.ErrStyleNotFound) ||
		errors.Is(err, paperscan.ErrTemplateNotFound) ||
		errors.Is(err, paperscan.ErrInvalidAssetPath) ||
		errors.Is(err, paperscan.ErrNoImages) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrRemoteInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, errCanvasStyle) {
		return ExitUsage
	}

	return ExitGeneral
}
