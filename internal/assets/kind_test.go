package assets

import (
	"errors"
	"testing"
)

func TestKind_File(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    Kind
		input   string
		want    string
		wantErr bool
	}{
		{"template", Template, "preamble", "templates/preamble.tmpl", false},
		{"style", Style, "preview", "styles/preview.css", false},
		{"hyphen", Template, "my-preamble", "templates/my-preamble.tmpl", false},
		{"underscore", Style, "my_style", "styles/my_style.css", false},
		{"empty", Template, "", "", true},
		{"slash", Template, "a/b", "", true},
		{"backslash", Style, "a\\b", "", true},
		{"dot", Template, "a.b", "", true},
		{"parent", Template, "..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.kind.File(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAssetName) {
					t.Errorf("File(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("File(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("File(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(Template.missing("x")) || !IsNotFound(Style.missing("x")) {
		t.Error("missing errors must be reported as not found")
	}
	if IsNotFound(ErrAssetRead) || IsNotFound(nil) {
		t.Error("read errors and nil are not \"not found\"")
	}
}
