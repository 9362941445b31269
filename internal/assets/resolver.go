package assets

import (
	"errors"
	"slices"
)

// AssetResolver chains loaders: each asset comes from the first loader
// that has it. A user directory, when configured, shadows the embedded
// assets one file at a time.
type AssetResolver struct {
	loaders []AssetLoader
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*AssetResolver)(nil)
	_ StyleLister = (*AssetResolver)(nil)
)

// NewAssetResolver returns a resolver over the embedded assets, preceded
// by customBasePath when it is set.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, fsLoader)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// Styles merges the style names of every loader, sorted and deduplicated.
func (r *AssetResolver) Styles() []string {
	var names []string
	for _, l := range r.loaders {
		if lister, ok := l.(StyleLister); ok {
			names = append(names, lister.Styles()...)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// first stops at the first result that is not a "not found" error, so a
// broken user file is reported instead of silently replaced.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil || !isNotFoundError(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
