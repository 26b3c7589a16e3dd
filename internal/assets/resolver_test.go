package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// mapLoader serves assets from memory, keyed by Kind.File path.
type mapLoader map[string]string

func (m mapLoader) Load(kind Kind, name string) (string, error) {
	file, err := kind.File(name)
	if err != nil {
		return "", err
	}
	if s, ok := m[file]; ok {
		return s, nil
	}
	return "", kind.missing(name)
}

// failLoader fails every read.
type failLoader struct{}

func (failLoader) Load(Kind, string) (string, error) { return "", ErrAssetRead }

// ----

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if len(r.layers) != 1 {
		t.Errorf("layers = %d, want embedded only", len(r.layers))
	}

	r, err = NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver(dir) error = %v", err)
	}
	if len(r.layers) != 2 {
		t.Errorf("layers = %d, want directory over embedded", len(r.layers))
	}

	_, err = NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_CustomWithFallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "templates", "preamble.tmpl", "custom preamble")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("custom wins", func(t *testing.T) {
		t.Parallel()

		got, err := r.Load(Template, PreambleTemplate)
		if err != nil {
			t.Fatal(err)
		}
		if got != "custom preamble" {
			t.Errorf("Load() = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := r.Load(Template, PreviewTemplate)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, "<!DOCTYPE html>") {
			t.Error("expected embedded preview template")
		}
	})

	t.Run("validation errors are not masked", func(t *testing.T) {
		t.Parallel()

		if _, err := r.Load(Style, "a/b"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		if _, err := r.Load(Style, "nonexistent"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestLayered(t *testing.T) {
	t.Parallel()

	top := mapLoader{"styles/preview.css": "top"}
	bottom := mapLoader{"styles/preview.css": "bottom", "templates/preamble.tmpl": "bottom preamble"}

	tests := []struct {
		name    string
		layers  []AssetLoader
		kind    Kind
		asset   string
		want    string
		wantErr error
	}{
		{"first layer wins", []AssetLoader{top, bottom}, Style, "preview", "top", nil},
		{"falls through", []AssetLoader{top, bottom}, Template, "preamble", "bottom preamble", nil},
		{"read error stops lookup", []AssetLoader{failLoader{}, bottom}, Style, "preview", "", ErrAssetRead},
		{"no layers", nil, Template, "preamble", "", ErrTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layered(tt.layers...).Load(tt.kind, tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}
