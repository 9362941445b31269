package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("failed to read asset")

	// ErrPathTraversal is returned when an asset resolves outside its
	// directory, typically through a symlink.
	ErrPathTraversal = errors.New("asset escapes its directory")
)

// AssetLoader loads paper styles and templates by bare name, without
// extension or directory.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// StyleLister is implemented by loaders that can enumerate their styles.
type StyleLister interface {
	Styles() []string
}
