package examples2pdf

import (
	"io"
	"strings"
)

// LaTeXEmitter writes LaTeX document body fragments.
type LaTeXEmitter struct {
	w      io.Writer
	layout Layout
}

// NewLaTeXEmitter returns an emitter writing to w. Empty layout fields take
// their defaults.
func NewLaTeXEmitter(w io.Writer, layout Layout) *LaTeXEmitter {
	return &LaTeXEmitter{w: w, layout: layout.withDefaults()}
}

func (e *LaTeXEmitter) Section(title string) error {
	return e.write("\n\\section{", title, "}\n")
}

func (e *LaTeXEmitter) Subsection(title string) error {
	return e.write("\n\\subsection{", title, "}\n\n")
}

func (e *LaTeXEmitter) Definition(text string) error {
	return e.write("\\begin{verbatim}\n", text, "\n\\end{verbatim}\n")
}

func (e *LaTeXEmitter) Text(line string) error {
	return e.write(line, "\n")
}

func (e *LaTeXEmitter) OpenExample() error {
	return e.write(
		"\n", e.layout.Label, "\\\\\n",
		"\\begin{minipage}{", e.layout.ListingWidth, "}\n",
		"\\begin{verbatim}\n",
	)
}

func (e *LaTeXEmitter) ExampleLine(line string) error {
	return e.write(line, "\n")
}

func (e *LaTeXEmitter) CloseExample(diagram string) error {
	if err := e.write("\\end{verbatim}\n\\end{minipage}\n"); err != nil {
		return err
	}
	return WriteExample(e.w, diagram, e.layout)
}

func (e *LaTeXEmitter) write(parts ...string) error {
	_, err := io.WriteString(e.w, strings.Join(parts, ""))
	return err
}

// WriteExample writes the rendered-diagram half of an example: a minipage
// holding the diagram environment around the example source, untouched.
func WriteExample(w io.Writer, example string, layout Layout) error {
	layout = layout.withDefaults()
	var b strings.Builder
	b.WriteString("\\begin{minipage}{" + layout.DiagramWidth + "}\n")
	b.WriteString("\\begin{" + layout.Environment + "}\n")
	b.WriteString(example)
	b.WriteString("\n\\end{" + layout.Environment + "}\n")
	b.WriteString("\\end{minipage}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var _ Emitter = (*LaTeXEmitter)(nil)
