package yamlutil_test

// Notes:
// - Marshal error branch: not tested, goccy/go-yaml only fails on types such
//   as channels or funcs which never appear in config structs.
// - The exact excerpt layout in SyntaxError.Detail belongs to goccy/go-yaml;
//   tests only check that it names the offending key.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-examples2pdf/internal/yamlutil"
)

type sample struct {
	Name     string   `yaml:"name"`
	Packages []string `yaml:"packages"`
	Clean    bool     `yaml:"clean"`
}

type nested struct {
	Input    sample `yaml:"input"`
	Compiler string `yaml:"compiler"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Input checks and strict decoding
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		dest       any
		wantErr    error
		wantSyntax bool
	}{
		{"valid", []byte("name: tikzircuit\nclean: true"), &sample{}, nil, false},
		{"nil data", nil, &sample{}, yamlutil.ErrNilData, false},
		{"empty data", []byte{}, &sample{}, yamlutil.ErrNilData, false},
		{"nil destination", []byte("name: x"), nil, yamlutil.ErrNilDestination, false},
		{"unknown key", []byte("name: x\nnmae: typo"), &sample{}, nil, true},
		{"duplicate key", []byte("name: x\nname: y"), &sample{}, nil, true},
		{"unclosed flow sequence", []byte("packages: [tikz, xcolor"), &sample{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantSyntax:
				var se *yamlutil.SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("error = %v, want *SyntaxError", err)
				}
				if !strings.HasPrefix(err.Error(), "yamlutil:") {
					t.Errorf("error = %q, want yamlutil prefix", err)
				}
				if se.Detail == "" {
					t.Error("SyntaxError.Detail is empty")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnmarshalStrict_Values(t *testing.T) {
	t.Parallel()

	var s sample
	if err := yamlutil.UnmarshalStrict([]byte("name: tikzircuit\npackages: [tikz, xcolor]\nclean: true"), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "tikzircuit" {
		t.Errorf("Name = %q, want %q", s.Name, "tikzircuit")
	}
	if len(s.Packages) != 2 || s.Packages[1] != "xcolor" {
		t.Errorf("Packages = %v, want [tikz xcolor]", s.Packages)
	}
	if !s.Clean {
		t.Error("Clean = false, want true")
	}
}

func TestUnmarshalStrict_DetailNamesKey(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("name: x\nnmae: typo\n"), &sample{})
	var se *yamlutil.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	if !strings.Contains(se.Detail, "nmae") {
		t.Errorf("Detail does not mention the unknown key:\n%s", se.Detail)
	}
}

func TestUnmarshalStrict_TooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	err := yamlutil.UnmarshalStrict(data, &sample{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding with and without head comments
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(sample{Name: "tikzircuit", Packages: []string{"tikz"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "name: tikzircuit") {
		t.Errorf("output missing name field:\n%s", out)
	}
	if !strings.Contains(string(out), "- tikz") {
		t.Errorf("output missing package list:\n%s", out)
	}
	if strings.Contains(string(out), "#") {
		t.Errorf("Marshal output has comments:\n%s", out)
	}
}

func TestMarshalCommented(t *testing.T) {
	t.Parallel()

	v := nested{Input: sample{Name: "tikzircuit"}, Compiler: "rubber"}
	out, err := yamlutil.MarshalCommented(v, map[string]string{
		"$.input":    "Source package",
		"$.compiler": "LaTeX toolchain",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(out)
	for _, want := range []string{"# Source package", "# LaTeX toolchain", "compiler: rubber"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "# LaTeX toolchain") > strings.Index(got, "compiler:") {
		t.Errorf("comment must precede its key:\n%s", got)
	}

	var back nested
	if err := yamlutil.UnmarshalStrict(out, &back); err != nil {
		t.Fatalf("commented output does not decode: %v", err)
	}
	if back.Input.Name != "tikzircuit" || back.Compiler != "rubber" {
		t.Errorf("decoded = %+v, want %+v", back, v)
	}
}
