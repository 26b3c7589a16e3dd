package examples2pdf

import (
	"fmt"
	"strings"
)

// Emitter receives the constructs recognized by a Transcoder and renders
// them into an output format. Calls arrive in source order; CloseExample
// always follows a matching OpenExample.
type Emitter interface {
	Section(title string) error
	Subsection(title string) error
	Definition(text string) error
	Text(line string) error
	OpenExample() error
	ExampleLine(line string) error
	// CloseExample ends the listing and renders the diagram source
	// collected while the block was open.
	CloseExample(diagram string) error
}

// Layout defaults, matching the side-by-side listing/diagram page layout.
const (
	DefaultListingWidth = `0.8\textwidth`
	DefaultDiagramWidth = `0.19\textwidth`
	DefaultEnvironment  = "tikzpicture"
	DefaultExampleLabel = "Example:"
)

// Layout controls how an example block is typeset.
type Layout struct {
	ListingWidth string // minipage width of the verbatim listing
	DiagramWidth string // minipage width of the rendered diagram
	Environment  string // diagram environment wrapping the example source
	Label        string // label printed before each example
}

// DefaultLayout returns the layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{
		ListingWidth: DefaultListingWidth,
		DiagramWidth: DefaultDiagramWidth,
		Environment:  DefaultEnvironment,
		Label:        DefaultExampleLabel,
	}
}

// withDefaults fills empty fields from DefaultLayout.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.ListingWidth == "" {
		l.ListingWidth = d.ListingWidth
	}
	if l.DiagramWidth == "" {
		l.DiagramWidth = d.DiagramWidth
	}
	if l.Environment == "" {
		l.Environment = d.Environment
	}
	if l.Label == "" {
		l.Label = d.Label
	}
	return l
}

// Validate checks that layout values can be placed inside LaTeX arguments.
// Empty fields are valid and fall back to defaults.
func (l Layout) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"listing width", l.ListingWidth},
		{"diagram width", l.DiagramWidth},
		{"environment", l.Environment},
		{"label", l.Label},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a newline", ErrInvalidLayout, f.name)
		}
		if strings.ContainsAny(f.value, "{}") {
			return fmt.Errorf("%w: %s %q contains a brace", ErrInvalidLayout, f.name, f.value)
		}
	}
	for _, r := range l.Environment {
		if !isEnvironmentRune(r) {
			return fmt.Errorf("%w: environment %q must be letters only", ErrInvalidLayout, l.Environment)
		}
	}
	return nil
}

// isEnvironmentRune reports whether r may appear in a LaTeX environment
// name (letters, plus the starred form).
func isEnvironmentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '*'
}
