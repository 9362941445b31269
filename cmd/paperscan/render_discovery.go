package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have an .html, .htm, .md, .markdown, .txt or .text extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToRender represents a single document to process.
type FileToRender struct {
	InputPath  string
	OutputPath string // PDF path; PNGs go to its directory
}

// discoverFiles finds all documents to render under inputPath.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	if fileutil.IsURL(inputPath) {
		return nil, fmt.Errorf("%w: %s (download it first)", ErrRemoteInput, inputPath)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if _, err := formatForPath(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if _, err := formatForPath(path); err != nil {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToRender{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the PDF output path for a document.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if isPDFPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// isPDFPath reports whether path names a PDF file rather than a directory.
func isPDFPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

// pngPrefixFor returns the PNG prefix for a rendered document.
func pngPrefixFor(f FileToRender, prefix string) string {
	if prefix != "" {
		return prefix
	}
	return strings.TrimSuffix(filepath.Base(f.OutputPath), filepath.Ext(f.OutputPath))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > paperscan.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, paperscan.MaxPoolSize)
	}
	return nil
}
