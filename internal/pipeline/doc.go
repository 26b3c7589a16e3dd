// Package pipeline renders the Markdown rendition of extracted package
// documentation into a standalone HTML preview page.
//
// The LaTeX path never goes through this package: the transcoder writes
// LaTeX directly and the external toolchain produces the PDF. The preview
// exists for quick review in a browser, where diagrams are shown as their
// highlighted source.
package pipeline
