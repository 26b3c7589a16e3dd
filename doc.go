// Package examples2pdf builds an examples document from the comment blocks
// of a LaTeX package source and compiles it with a LaTeX toolchain.
//
// # Quick Start
//
// Create a generator and run it on a source file:
//
//	gen, err := examples2pdf.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, examples2pdf.Input{
//	    Source: "tikzircuit.tex",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output, result.PDF)
//
// This writes tikzircuit-examples.tex next to the source and runs
// "rubber --pdf" then "rubber --clean" on it.
//
// # Source Conventions
//
// The source is read line by line:
//
//	%% ignored comment
//	% Resistors                 section heading
//	  % Resistor                subsection heading (after a section or code)
//	  % \Resistor(a,b)          verbatim definition (after a subsection)
//	  % Draws a resistor.       paragraph text
//	  % Example:                opens an example block
//	  % \Resistor(0,0)(2,0)     listed, and typeset as a diagram
//	\def\Resistor...            code, ends the example block
//
// Each example block is printed twice on the page: as a verbatim listing
// and as a tikzpicture rendering of the same source. The cue line itself
// belongs to neither.
//
// # Output Formats
//
// FormatLaTeX (default) writes a complete document and compiles it.
// FormatMarkdown and FormatHTML write a preview without diagrams and never
// invoke the toolchain.
//
// # Toolchains
//
// Toolchain presets are rubber, latexmk, pdflatex and none. Exit statuses
// are logged and otherwise ignored unless WithStrict(true) is given:
//
//	tc, _ := examples2pdf.Preset(examples2pdf.PresetLatexmk)
//	gen, err := examples2pdf.NewGenerator(
//	    examples2pdf.WithToolchain(tc),
//	    examples2pdf.WithStrict(true),
//	    examples2pdf.WithTimeout(2*time.Minute),
//	)
//
// # Lower-Level API
//
// Transcode runs the line classifier alone against any Emitter:
//
//	stats, err := examples2pdf.Transcode(ctx, r,
//	    examples2pdf.NewLaTeXEmitter(w, examples2pdf.DefaultLayout()),
//	    examples2pdf.TranscodeOptions{})
package examples2pdf
