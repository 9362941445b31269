// Package assets provides paper styles and the HTML shell used by the
// browser render surface.
//
// Three loaders implement AssetLoader:
//
//   - EmbeddedLoader serves the built-in styles (plain, lined, grid) and
//     the surface template compiled into the binary.
//   - FilesystemLoader serves a user directory with the same layout,
//     read through an os.Root so links cannot leave it.
//   - AssetResolver chains a FilesystemLoader in front of the embedded
//     assets, so a directory may override one style and keep the rest.
//
// Directory layout:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── surface.html
//
// Asset names are bare identifiers; see ValidateAssetName.
package assets
