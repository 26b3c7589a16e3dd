// Package assets provides the LaTeX preamble template and the HTML preview
// page and style.
//
// Assets are addressed by Kind and bare name:
//
//	{dir}/
//	├── templates/
//	│   └── {name}.tmpl      # preamble (LaTeX), preview (HTML page)
//	└── styles/
//	    └── {name}.css       # preview
//
// EmbeddedLoader serves the built-in copies, DirLoader a user directory, and
// AssetResolver stacks them so a user directory may override only the
// preamble and keep the built-in preview page.
package assets
