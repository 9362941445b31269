package assets

// Names of the built-in assets.
const (
	DefaultStyleName    = "plain"
	LinedStyleName      = "lined"
	GridStyleName       = "grid"
	SurfaceTemplateName = "surface"
)

// StyleNames lists the built-in paper styles.
func StyleNames() []string {
	return []string{DefaultStyleName, LinedStyleName, GridStyleName}
}
