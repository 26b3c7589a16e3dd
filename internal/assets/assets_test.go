package assets

import (
	"strings"
	"testing"
)

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	pre, err := LoadTemplate(PreambleTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate(preamble) error = %v", err)
	}
	if !strings.Contains(pre, `\documentclass`) {
		t.Error("preamble template missing \\documentclass")
	}

	page, err := LoadTemplate(PreviewTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate(preview) error = %v", err)
	}
	if !strings.Contains(page, "<html") {
		t.Error("preview page missing <html")
	}

	css, err := LoadStyle(PreviewStyle)
	if err != nil {
		t.Fatalf("LoadStyle(preview) error = %v", err)
	}
	if !strings.Contains(css, "font-family") {
		t.Error("preview style missing font-family")
	}
}
