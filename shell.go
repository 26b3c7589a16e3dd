package examples2pdf

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/alnah/go-examples2pdf/internal/dateutil"
)

// Document defaults.
const (
	DefaultClass        = "scrartcl"
	DefaultIntro        = "introExamples"
	DefaultTitlePrefix  = "Components and Examples of "
	DocumentEnd         = "\n\\end{document}"
	maxDocumentFieldLen = 500
)

// Package is a \usepackage line.
type Package struct {
	Name    string
	Options []string
}

// DocumentSettings configures the document shell around the transcoded
// body. Nil slices and pointers and empty strings take the defaults for the
// source; an empty non-nil slice means none.
type DocumentSettings struct {
	Class        string
	ClassOptions []string
	Packages     []Package
	Preamble     []string // raw lines placed after the packages
	Inputs       []string // files \input before the title, default the source stem
	Title        string
	Author       string
	Date         string  // "", "today", "auto", "auto:FORMAT" or a literal
	TOC          *bool   // table of contents, default on
	Intro        *string // fragment \input after the TOC, "" omits it
}

// DefaultPackages returns the packages loaded by default.
func DefaultPackages() []Package {
	return []Package{
		{Name: "tikz"},
		{Name: "xcolor"},
		{Name: "siunitx"},
		{Name: "verbatim"},
		{Name: "hyperref", Options: []string{"linktoc=all", "colorlinks=false"}},
	}
}

// DefaultDocumentSettings returns the settings used for a source with the
// given stem, fully resolved.
func DefaultDocumentSettings(stem string) DocumentSettings {
	toc := true
	intro := DefaultIntro
	return DocumentSettings{
		Class:        DefaultClass,
		ClassOptions: []string{"parskip=full"},
		Packages:     DefaultPackages(),
		Preamble:     []string{`\hypersetup{allbordercolors=white}`},
		Inputs:       []string{stem},
		Title:        DefaultTitlePrefix + stem,
		TOC:          &toc,
		Intro:        &intro,
	}
}

// resolve fills unset fields with the defaults for stem.
func (d DocumentSettings) resolve(stem string) DocumentSettings {
	def := DefaultDocumentSettings(stem)
	if d.Class == "" {
		d.Class = def.Class
	}
	if d.ClassOptions == nil {
		d.ClassOptions = def.ClassOptions
	}
	if d.Packages == nil {
		d.Packages = def.Packages
	}
	if d.Preamble == nil {
		d.Preamble = def.Preamble
	}
	if d.Inputs == nil {
		d.Inputs = def.Inputs
	}
	if d.Title == "" {
		d.Title = def.Title
	}
	if d.TOC == nil {
		d.TOC = def.TOC
	}
	if d.Intro == nil {
		d.Intro = def.Intro
	}
	return d
}

// Validate checks the settings. Unset fields are valid.
func (d *DocumentSettings) Validate() error {
	if d == nil {
		return nil
	}

	single := map[string]string{
		"class":  d.Class,
		"title":  d.Title,
		"author": d.Author,
		"date":   d.Date,
	}
	if d.Intro != nil {
		single["intro"] = *d.Intro
	}
	for name, value := range single {
		if err := checkDocumentField(name, value); err != nil {
			return err
		}
	}
	if strings.ContainsAny(d.Class, "{}[] ") {
		return fmt.Errorf("%w: class %q is not a name", ErrInvalidDocument, d.Class)
	}

	for _, opt := range d.ClassOptions {
		if err := checkDocumentField("class option", opt); err != nil {
			return err
		}
	}
	for _, p := range d.Packages {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: package name is empty", ErrInvalidDocument)
		}
		if err := checkDocumentField("package", p.Name); err != nil {
			return err
		}
		for _, opt := range p.Options {
			if err := checkDocumentField("package option", opt); err != nil {
				return err
			}
		}
	}
	for _, line := range d.Preamble {
		if err := checkDocumentField("preamble line", line); err != nil {
			return err
		}
	}
	for _, in := range d.Inputs {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("%w: input name is empty", ErrInvalidDocument)
		}
		if err := checkDocumentField("input", in); err != nil {
			return err
		}
	}
	return nil
}

func checkDocumentField(name, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: %s contains a newline", ErrInvalidDocument, name)
	}
	if len(value) > maxDocumentFieldLen {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidDocument, name, maxDocumentFieldLen)
	}
	return nil
}

// preambleData is the data handed to the preamble template.
type preambleData struct {
	Class        string
	ClassOptions []string
	Packages     []Package
	Preamble     []string
	Inputs       []string
	Title        string
	Author       string
	Date         string
	TOC          bool
	Intro        string
}

// Shell writes the parts of the document that surround the body.
type Shell struct {
	preamble *template.Template
}

// NewShell parses a preamble template. The template uses << >> delimiters
// so that LaTeX braces need no escaping.
func NewShell(preambleTemplate string) (*Shell, error) {
	tmpl, err := template.New("preamble").
		Delims("<<", ">>").
		Funcs(template.FuncMap{"join": strings.Join}).
		Option("missingkey=error").
		Parse(preambleTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing preamble: %v", ErrTemplate, err)
	}
	return &Shell{preamble: tmpl}, nil
}

// WritePreamble writes everything up to and including the intro input.
// Settings are resolved against stem, and the date against now.
func (s *Shell) WritePreamble(w io.Writer, d DocumentSettings, stem string, now time.Time) error {
	d = d.resolve(stem)
	date, err := dateutil.Resolve(d.Date, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	data := preambleData{
		Class:        d.Class,
		ClassOptions: d.ClassOptions,
		Packages:     d.Packages,
		Preamble:     d.Preamble,
		Inputs:       d.Inputs,
		Title:        d.Title,
		Author:       d.Author,
		Date:         date,
		TOC:          *d.TOC,
		Intro:        *d.Intro,
	}
	if err := s.preamble.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return nil
}

// WritePostamble closes the document.
func (s *Shell) WritePostamble(w io.Writer) error {
	if _, err := io.WriteString(w, DocumentEnd); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// WriteMarkdownHeader writes the title block of a Markdown document.
// LaTeX's \today has no Markdown equivalent and is replaced by the date
// formatted as YYYY-MM-DD.
func WriteMarkdownHeader(w io.Writer, d DocumentSettings, stem string, now time.Time) error {
	d = d.resolve(stem)
	date, err := dateutil.Resolve(d.Date, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if date == dateutil.LaTeXToday {
		if date, err = dateutil.Resolve("auto", now); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}

	var b strings.Builder
	b.WriteString("# " + d.Title + "\n")
	byline := make([]string, 0, 2)
	if d.Author != "" {
		byline = append(byline, d.Author)
	}
	if date != "" {
		byline = append(byline, date)
	}
	if len(byline) > 0 {
		b.WriteString("\n*" + strings.Join(byline, ", ") + "*\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
