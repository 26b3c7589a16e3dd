package examples2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// DefaultSuffix is appended to the source stem to name the output.
const DefaultSuffix = "-examples"

// ParseFormat returns the format named s (case-insensitive). An empty
// string selects FormatLaTeX.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatLaTeX:
		return FormatLaTeX, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q (must be latex, markdown, or html)", ErrInvalidFormat, s)
}

// Extension returns the file extension used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	default:
		return "tex"
	}
}

// Input describes one generation.
type Input struct {
	Source        string // path of the LaTeX package source (required)
	OutputDir     string // default: the source directory
	Suffix        string // default: DefaultSuffix
	Format        Format // default: FormatLaTeX
	Document      DocumentSettings
	Layout        Layout
	CloseDangling bool // close an example block left open at end of input
	NoClean       bool // skip the toolchain clean step
}

// Validate checks the input without touching the filesystem.
func (in *Input) Validate() error {
	if strings.TrimSpace(in.Source) == "" {
		return ErrNoSource
	}
	if _, err := ParseFormat(string(in.Format)); err != nil {
		return err
	}
	if strings.ContainsAny(in.Suffix, `/\`) || strings.Contains(in.Suffix, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidSuffix, in.Suffix)
	}
	if err := in.Document.Validate(); err != nil {
		return err
	}
	return in.Layout.Validate()
}

func (in *Input) format() Format {
	f, err := ParseFormat(string(in.Format))
	if err != nil {
		return FormatLaTeX
	}
	return f
}

func (in *Input) suffix() string {
	if in.Suffix == "" {
		return DefaultSuffix
	}
	return in.Suffix
}

// Result describes a completed generation.
type Result struct {
	Source   string
	Output   string // generated document
	PDF      string // compiled PDF, empty when none was produced
	Format   Format
	Stats    Stats
	Build    *StepResult // nil when no build ran
	Clean    *StepResult // nil when no clean step ran
	Duration time.Duration
}

// Compiled reports whether the toolchain produced a PDF.
func (r *Result) Compiled() bool {
	return r != nil && r.PDF != ""
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout bounds each toolchain call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("examples2pdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.timeout = d
	}
}
