package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// FilesystemLoader reads user styles and templates from a directory laid
// out like the embedded assets. Reads go through an os.Root, so nothing
// outside the directory is reachable, symlinks included.
type FilesystemLoader struct {
	basePath string
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*FilesystemLoader)(nil)
	_ StyleLister = (*FilesystemLoader)(nil)
)

// NewFilesystemLoader checks that basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer root.Close()

	if _, err := fs.ReadDir(root.FS(), "."); err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrInvalidBasePath, abs, err)
	}
	return &FilesystemLoader{basePath: abs}, nil
}

// LoadStyle returns {basePath}/styles/<name>.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(styleKind, name)
}

// LoadTemplate returns {basePath}/templates/<name>.html.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.read(templateKind, name)
}

// Styles lists the valid style names found in {basePath}/styles, sorted.
// A missing styles directory yields no names.
func (f *FilesystemLoader) Styles() []string {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return nil
	}
	defer root.Close()

	entries, err := fs.ReadDir(root.FS(), styleKind.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), styleKind.ext)
		if !ok || entry.IsDir() || ValidateAssetName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (f *FilesystemLoader) read(kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	rel := path.Join(kind.dir, name+kind.ext)
	content, err := root.ReadFile(rel)
	switch {
	case err == nil:
		return string(content), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.notFound, name)
	}

	// os.Root refuses links leaving the directory without a typed error,
	// so identify them by what the entry is.
	if info, lerr := root.Lstat(rel); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
}
