package paperscan

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alnah/go-paperscan/internal/assets"
)

// DefaultStyle is the name of the built-in paper style.
const DefaultStyle = assets.DefaultStyleName

// AssetLoader loads paper styles and the browser surface shell by bare
// name. LoadStyle returns ErrStyleNotFound and LoadTemplate returns
// ErrTemplateNotFound for unknown or malformed names.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader returns a loader over the embedded assets. When basePath
// is set, files under basePath/styles and basePath/templates shadow the
// embedded ones of the same name.
//
// Returns ErrInvalidAssetPath if basePath is set but is not a readable
// directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, publicAssetError(err)
	}
	return &assetLoader{resolver: resolver}, nil
}

// StyleNames lists the built-in paper styles.
func StyleNames() []string {
	return slices.Clone(assets.StyleNames())
}

// AvailableStyles lists the styles loader can serve. Loaders that cannot
// enumerate their styles report the built-in ones.
func AvailableStyles(loader AssetLoader) []string {
	if lister, ok := loader.(assets.StyleLister); ok {
		return lister.Styles()
	}
	return StyleNames()
}

// assetLoader exposes an assets.AssetResolver with public errors.
type assetLoader struct {
	resolver *assets.AssetResolver
}

func (a *assetLoader) LoadStyle(name string) (string, error) {
	css, err := a.resolver.LoadStyle(name)
	return css, publicAssetError(err)
}

func (a *assetLoader) LoadTemplate(name string) (string, error) {
	html, err := a.resolver.LoadTemplate(name)
	return html, publicAssetError(err)
}

func (a *assetLoader) Styles() []string {
	return a.resolver.Styles()
}

// publicAssetError attaches the exported sentinel matching an internal
// asset error. A malformed name is reported as not found.
func publicAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return fmt.Errorf("%w: %w", ErrStyleNotFound, err)
	default:
		return err
	}
}
