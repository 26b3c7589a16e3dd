package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeAsset(t *testing.T, base, dir, file, content string) {
	t.Helper()
	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", full, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", file, err)
	}
}

func TestNewDirLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"valid directory", t.TempDir(), false},
		{"empty path", "", true},
		{"missing directory", filepath.Join(t.TempDir(), "nope"), true},
		{"file instead of directory", file, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := NewDirLoader(tt.dir)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBasePath) {
					t.Errorf("NewDirLoader(%q) error = %v, want ErrInvalidBasePath", tt.dir, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDirLoader(%q) error = %v", tt.dir, err)
			}
			if !filepath.IsAbs(l.Dir()) {
				t.Errorf("Dir() = %q, want absolute", l.Dir())
			}
		})
	}
}

func TestDirLoader_Load(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "templates", "preamble.tmpl", `\documentclass{article}`)
	writeAsset(t, base, "styles", "preview.css", "body{}")

	loader, err := NewDirLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		kind    Kind
		asset   string
		want    string
		wantErr error
	}{
		{"template", Template, "preamble", `\documentclass{article}`, nil},
		{"style", Style, "preview", "body{}", nil},
		{"missing template", Template, "preview", "", ErrTemplateNotFound},
		{"missing style", Style, "print", "", ErrStyleNotFound},
		{"traversal", Style, "../x", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.Load(tt.kind, tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.asset, err)
			}
			if got != tt.want {
				t.Errorf("Load(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}
}

func TestDirLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	outside := t.TempDir()
	writeAsset(t, outside, "", "secret.tmpl", "secret")

	if err := os.MkdirAll(filepath.Join(base, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "templates", "preamble.tmpl")
	if err := os.Symlink(filepath.Join(outside, "secret.tmpl"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewDirLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	got, err := loader.Load(Template, "preamble")
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("Load(symlink) = %q, %v; want ErrAssetRead", got, err)
	}
}
