// Package assets provides the stylesheet and page template for standalone
// README help pages. Assets can be loaded from embedded files or a custom
// directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader ships the readmehelp stylesheet, which styles the classes
// the converter emits (anchors, lists, rules, code, images and highlighted
// snippet tables), and the page template used by --standalone.
//
// AssetResolver tries the custom FilesystemLoader first and falls back to the
// embedded loader when an asset is not found there, so a site can override
// only the stylesheet or only the template.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Templates are html/template documents receiving {{.Title}} and {{.Body}}.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
