package examples2pdf

// Notes:
// - The default preamble is compared byte for byte with the document header
//   the tool has always produced for tikzircuit.tex
// - Templates come from the embedded assets, loaded the same way
//   NewGenerator does

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-examples2pdf/internal/assets"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

const tikzircuitPreamble = "\\documentclass[parskip=full]{scrartcl}\n" +
	"\\usepackage{tikz}\n" +
	"\\usepackage{xcolor}\n" +
	"\\usepackage{siunitx}\n" +
	"\\usepackage{verbatim}\n" +
	"\\usepackage[linktoc=all,colorlinks=false]{hyperref}\n" +
	"\\hypersetup{allbordercolors=white}\n" +
	"\\input{tikzircuit}\n" +
	"\\title{Components and Examples of tikzircuit}\n" +
	"\n\\begin{document}\n" +
	"\\maketitle\n" +
	"\\tableofcontents\n" +
	"\\newpage\n" +
	"\\input{introExamples}\n"

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	tmpl, err := assets.LoadTemplate(assets.PreambleTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	s, err := NewShell(tmpl)
	if err != nil {
		t.Fatalf("NewShell() error = %v", err)
	}
	return s
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Preamble
// ---------------------------------------------------------------------------

func TestShell_DefaultPreamble(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := newTestShell(t).WritePreamble(&buf, DocumentSettings{}, "tikzircuit", fixedNow); err != nil {
		t.Fatalf("WritePreamble() error = %v", err)
	}
	if buf.String() != tikzircuitPreamble {
		t.Errorf("preamble mismatch\ngot:\n%s\nwant:\n%s", buf.String(), tikzircuitPreamble)
	}
}

func TestShell_CustomPreamble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings DocumentSettings
		contains []string
		excludes []string
	}{
		{
			name:     "author and today",
			settings: DocumentSettings{Author: "Jane Roe", Date: "today"},
			contains: []string{"\\author{Jane Roe}\n", "\\date{\\today}\n"},
		},
		{
			name:     "auto date with preset",
			settings: DocumentSettings{Date: "auto:european"},
			contains: []string{"\\date{05/03/2024}\n"},
		},
		{
			name:     "literal date",
			settings: DocumentSettings{Date: "Spring 2024"},
			contains: []string{"\\date{Spring 2024}\n"},
		},
		{
			name:     "no toc and no intro",
			settings: DocumentSettings{TOC: boolPtr(false), Intro: strPtr("")},
			contains: []string{"\\maketitle\n"},
			excludes: []string{"\\tableofcontents", "\\newpage", "introExamples"},
		},
		{
			name:     "custom intro",
			settings: DocumentSettings{Intro: strPtr("preface")},
			contains: []string{"\\newpage\n\\input{preface}\n"},
		},
		{
			name: "class and packages",
			settings: DocumentSettings{
				Class:        "article",
				ClassOptions: []string{"a4paper", "11pt"},
				Packages:     []Package{{Name: "circuitikz", Options: []string{"european"}}},
				Preamble:     []string{},
			},
			contains: []string{
				"\\documentclass[a4paper,11pt]{article}\n",
				"\\usepackage[european]{circuitikz}\n",
			},
			excludes: []string{"\\usepackage{tikz}", "hypersetup"},
		},
		{
			name:     "no class options",
			settings: DocumentSettings{ClassOptions: []string{}},
			contains: []string{"\\documentclass{scrartcl}\n"},
		},
		{
			name:     "inputs and title",
			settings: DocumentSettings{Inputs: []string{"tikzircuit", "extras"}, Title: "Circuit Catalogue"},
			contains: []string{"\\input{tikzircuit}\n\\input{extras}\n", "\\title{Circuit Catalogue}\n"},
		},
		{
			name:     "no inputs",
			settings: DocumentSettings{Inputs: []string{}},
			contains: []string{"\\hypersetup{allbordercolors=white}\n\\title{"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := newTestShell(t).WritePreamble(&buf, tt.settings, "tikzircuit", fixedNow); err != nil {
				t.Fatalf("WritePreamble() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("preamble missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("preamble contains %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestShell_InvalidDate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := newTestShell(t).WritePreamble(&buf, DocumentSettings{Date: "autoYYYY"}, "x", fixedNow)
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("WritePreamble() error = %v, want ErrInvalidDocument", err)
	}
}

func TestNewShell_BadTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewShell("<<if .Title>>unclosed"); !errors.Is(err, ErrTemplate) {
		t.Errorf("NewShell() error = %v, want ErrTemplate", err)
	}
}

func TestShell_TemplateExecutionError(t *testing.T) {
	t.Parallel()

	s, err := NewShell("<<.Missing>>")
	if err != nil {
		t.Fatalf("NewShell() error = %v", err)
	}
	var buf bytes.Buffer
	if err := s.WritePreamble(&buf, DocumentSettings{}, "x", fixedNow); !errors.Is(err, ErrTemplate) {
		t.Errorf("WritePreamble() error = %v, want ErrTemplate", err)
	}
}

func TestShell_Postamble(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := newTestShell(t).WritePostamble(&buf); err != nil {
		t.Fatalf("WritePostamble() error = %v", err)
	}
	if buf.String() != "\n\\end{document}" {
		t.Errorf("WritePostamble() = %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// Markdown Header
// ---------------------------------------------------------------------------

func TestWriteMarkdownHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings DocumentSettings
		want     string
	}{
		{
			name: "title only",
			want: "# Components and Examples of tikzircuit\n",
		},
		{
			name:     "author and today",
			settings: DocumentSettings{Author: "Jane Roe", Date: "today"},
			want:     "# Components and Examples of tikzircuit\n\n*Jane Roe, 2024-03-05*\n",
		},
		{
			name:     "date only",
			settings: DocumentSettings{Title: "Catalogue", Date: "auto:long"},
			want:     "# Catalogue\n\n*March 5, 2024*\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WriteMarkdownHeader(&buf, tt.settings, "tikzircuit", fixedNow); err != nil {
				t.Fatalf("WriteMarkdownHeader() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteMarkdownHeader() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestDocumentSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings *DocumentSettings
		wantErr  bool
	}{
		{"nil", nil, false},
		{"zero value", &DocumentSettings{}, false},
		{"defaults", func() *DocumentSettings { d := DefaultDocumentSettings("x"); return &d }(), false},
		{"newline in title", &DocumentSettings{Title: "a\nb"}, true},
		{"class with brace", &DocumentSettings{Class: "article}"}, true},
		{"class with space", &DocumentSettings{Class: "my class"}, true},
		{"empty package name", &DocumentSettings{Packages: []Package{{Name: " "}}}, true},
		{"newline in package option", &DocumentSettings{Packages: []Package{{Name: "a", Options: []string{"x\n"}}}}, true},
		{"empty input", &DocumentSettings{Inputs: []string{""}}, true},
		{"newline in preamble line", &DocumentSettings{Preamble: []string{"a\nb"}}, true},
		{"newline in intro", &DocumentSettings{Intro: strPtr("a\nb")}, true},
		{"author too long", &DocumentSettings{Author: strings.Repeat("a", maxDocumentFieldLen+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.settings.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDocument) {
					t.Errorf("Validate() error = %v, want ErrInvalidDocument", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}
