package examples2pdf_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-examples2pdf"
)

// Example_transcode runs the line classifier on its own and prints the
// LaTeX body.
func Example_transcode() {
	src := strings.Join([]string{
		"% Resistors",
		`\def\x{}`,
		"  % Resistor",
		`  % \Resistor(a,b)`,
		"  % Example:",
		`  % \draw (0,0);`,
		`  % \Resistor(0,0)(2,0)`,
		`\def\y{}`,
	}, "\n")

	stats, err := examples2pdf.Transcode(context.Background(), strings.NewReader(src),
		examples2pdf.NewLaTeXEmitter(os.Stdout, examples2pdf.DefaultLayout()),
		examples2pdf.TranscodeOptions{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println()
	fmt.Println("examples:", stats.Examples)
	// Output:
	// \section{Resistors}
	//
	// \subsection{Resistor}
	//
	// \begin{verbatim}
	// \Resistor(a,b)
	// \end{verbatim}
	//
	// Example:\\
	// \begin{minipage}{0.8\textwidth}
	// \begin{verbatim}
	// \draw (0,0);
	// \Resistor(0,0)(2,0)
	// \end{verbatim}
	// \end{minipage}
	// \begin{minipage}{0.19\textwidth}
	// \begin{tikzpicture}
	// \draw (0,0);
	// \Resistor(0,0)(2,0)
	//
	// \end{tikzpicture}
	// \end{minipage}
	//
	// examples: 1
}

// ExampleGenerator_Render writes a Markdown preview without touching the
// filesystem or the LaTeX toolchain.
func ExampleGenerator_Render() {
	gen, err := examples2pdf.NewGenerator()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	src := "% Capacitors\ncode\n  % Capacitor\n  % \\Capacitor(a,b)\n  % Two parallel plates.\n"
	var out strings.Builder
	_, err = gen.Render(context.Background(), strings.NewReader(src), &out, examples2pdf.Input{
		Source: "tikzircuit.tex",
		Format: examples2pdf.FormatMarkdown,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(out.String())
	// Output:
	// # Components and Examples of tikzircuit
	//
	// ## Capacitors
	//
	// ### Capacitor
	//
	// ```latex
	// \Capacitor(a,b)
	// ```
	//
	// Two parallel plates.
}

// ExamplePreset shows the commands a toolchain preset runs.
func ExamplePreset() {
	tc, err := examples2pdf.Preset(examples2pdf.PresetLatexmk)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.Join(tc.BuildCommand("tikzircuit-examples.tex"), " "))
	fmt.Println(strings.Join(tc.CleanCommand("tikzircuit-examples.tex"), " "))
	// Output:
	// latexmk -pdf tikzircuit-examples.tex
	// latexmk -c tikzircuit-examples.tex
}
