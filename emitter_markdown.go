package examples2pdf

import (
	"io"
	"strings"
)

// MarkdownEmitter writes a Markdown rendition of the document body.
// Sections become level-two headings under the document title, definitions
// and examples become fenced latex blocks. Diagrams are not rendered; the
// example listing already carries their source.
type MarkdownEmitter struct {
	w     io.Writer
	label string
}

// NewMarkdownEmitter returns an emitter writing to w.
func NewMarkdownEmitter(w io.Writer, layout Layout) *MarkdownEmitter {
	return &MarkdownEmitter{w: w, label: layout.withDefaults().Label}
}

func (e *MarkdownEmitter) Section(title string) error {
	return e.write("\n## ", title, "\n")
}

func (e *MarkdownEmitter) Subsection(title string) error {
	return e.write("\n### ", title, "\n\n")
}

func (e *MarkdownEmitter) Definition(text string) error {
	return e.write("```latex\n", text, "\n```\n\n")
}

func (e *MarkdownEmitter) Text(line string) error {
	return e.write(line, "\n")
}

func (e *MarkdownEmitter) OpenExample() error {
	return e.write("\n**", e.label, "**\n\n```latex\n")
}

func (e *MarkdownEmitter) ExampleLine(line string) error {
	return e.write(line, "\n")
}

func (e *MarkdownEmitter) CloseExample(string) error {
	return e.write("```\n\n")
}

func (e *MarkdownEmitter) write(parts ...string) error {
	_, err := io.WriteString(e.w, strings.Join(parts, ""))
	return err
}

var _ Emitter = (*MarkdownEmitter)(nil)
