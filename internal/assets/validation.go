package assets

import (
	"fmt"
	"regexp"
)

// MaxAssetNameLength bounds style and template names.
const MaxAssetNameLength = 64

// assetNamePattern allows letters, digits, hyphens and underscores, starting
// with a letter or digit. Separators and dots never match.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that name can be joined to an asset directory
// and an extension without escaping it.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: %d characters (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	case !assetNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidAssetName, name)
	}
	return nil
}
