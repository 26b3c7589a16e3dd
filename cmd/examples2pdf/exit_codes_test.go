package main

// Notes:
// - exitCodeFor: we test every error category, wrapped and bare.
// - hintFor: we test which errors get a hint suffix and that batch errors
//   do not (their hints are printed per source).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
		{"compile failed", fmt.Errorf("x: %w", examples2pdf.ErrCompile), ExitCompiler},
		{"compiler not found", &compileError{command: "rubber", err: examples2pdf.ErrCompilerNotFound}, ExitCompiler},
		{"read source", fmt.Errorf("a.tex: %w", examples2pdf.ErrReadSource), ExitIO},
		{"write output", examples2pdf.ErrWriteOutput, ExitIO},
		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"output dir", ErrOutputDir, ExitIO},
		{"config exists", ErrConfigExists, ExitIO},
		{"usage", fmt.Errorf("%w: unknown flag", ErrUsage), ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"no source", examples2pdf.ErrNoSource, ExitUsage},
		{"bad format", examples2pdf.ErrInvalidFormat, ExitUsage},
		{"bad layout", examples2pdf.ErrInvalidLayout, ExitUsage},
		{"bad document", examples2pdf.ErrInvalidDocument, ExitUsage},
		{"bad asset path", examples2pdf.ErrInvalidAsset, ExitUsage},
		{"unknown preset", examples2pdf.ErrUnknownPreset, ExitUsage},
		{"batch follows first", &batchError{failed: 2, total: 3, first: examples2pdf.ErrReadSource}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hint suffixes
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string // "" means no hint
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"timeout", fmt.Errorf("build: %w", context.DeadlineExceeded), "--timeout"},
		{"compiler not found", &compileError{command: "rubber", err: examples2pdf.ErrCompilerNotFound}, "install rubber"},
		{"compile failed", &compileError{command: "rubber", output: "out/a-examples.tex", err: examples2pdf.ErrCompile}, "out/a-examples.log"},
		{"compile failed without path", examples2pdf.ErrCompile, ""},
		{"config not found", config.ErrConfigNotFound, "examples2pdf init"},
		{"source", examples2pdf.ErrReadSource, "pass the package source"},
		{"output dir", ErrOutputDir, "writable"},
		{"batch", &batchError{failed: 1, total: 2, first: examples2pdf.ErrReadSource}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want no hint", got)
				}
				return
			}
			if !strings.HasPrefix(got, "\n  hint: ") || !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor() = %q, want hint containing %q", got, tt.contains)
			}
		})
	}
}
