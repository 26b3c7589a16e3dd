package main

import (
	"io"

	flag "github.com/spf13/pflag"

	examples2pdf "github.com/alnah/go-examples2pdf"
)

// Completion annotations, read by the completion generators.
const (
	annotationValues = "examples2pdf_values" // fixed choices
	annotationFiles  = "examples2pdf_files"  // file globs
	annotationDirs   = "examples2pdf_dirs"   // any directory
)

// annotate attaches completion data to a registered flag.
func annotate(fs *flag.FlagSet, name, key string, values ...string) {
	if values == nil {
		values = []string{}
	}
	_ = fs.SetAnnotation(name, key, values)
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document shell flags.
type documentFlags struct {
	title  string
	author string
	date   string
	intro  string
	noTOC  bool
}

// compilerFlags holds LaTeX toolchain flags.
type compilerFlags struct {
	preset  string
	timeout string
	strict  bool
	noClean bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common        commonFlags
	output        string
	format        string
	workers       int
	closeDangling bool
	assetPath     string
	document      documentFlags
	compiler      compilerFlags

	// set records flags given explicitly, for flags whose zero value
	// is meaningful (--intro "").
	set map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	annotate(fs, "config", annotationFiles, "*.yaml", "*.yml")
}

// addDocumentFlags adds document shell flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = Components and Examples of <stem>)")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.date, "date", "", "document date: today, auto, auto:FORMAT, or literal")
	fs.StringVar(&f.intro, "intro", "", "fragment input after the TOC (\"\" = none)")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable table of contents")
}

// addCompilerFlags adds toolchain flags to a FlagSet.
func addCompilerFlags(fs *flag.FlagSet, f *compilerFlags) {
	fs.StringVar(&f.preset, "compiler", "", "LaTeX toolchain: rubber, latexmk, pdflatex, none")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "toolchain timeout per step (e.g., 90s, 5m)")
	fs.BoolVar(&f.strict, "strict", false, "fail when the toolchain fails")
	fs.BoolVar(&f.noClean, "no-clean", false, "keep auxiliary files")
	annotate(fs, "compiler", annotationValues, examples2pdf.PresetNames()...)
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parseConvertFlags and completion generation.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: latex, markdown, html")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.closeDangling, "close-dangling", false, "close an example left open at end of file")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")

	annotate(fs, "output", annotationDirs)
	annotate(fs, "format", annotationValues,
		string(examples2pdf.FormatLaTeX), string(examples2pdf.FormatMarkdown), string(examples2pdf.FormatHTML))
	annotate(fs, "asset-path", annotationDirs)

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addCompilerFlags(fs, &f.compiler)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Errors are returned, not printed; --help yields flag.ErrHelp.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{set: make(map[string]bool)}
	fs := newConvertFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}
