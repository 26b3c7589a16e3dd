package main

import (
	"context"
	"errors"
	"os"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/config"
	"github.com/alnah/go-examples2pdf/internal/hints"
)

// Exit codes for the examples2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful generation
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // Source not readable, output not writable
	ExitCompiler = 4 // LaTeX toolchain errors (strict mode)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Toolchain errors (exit 4)
	if examples2pdf.IsCompileError(err) {
		return ExitCompiler
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, examples2pdf.ErrReadSource) ||
		errors.Is(err, examples2pdf.ErrWriteOutput) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrConfigExists) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, examples2pdf.ErrNoSource) ||
		errors.Is(err, examples2pdf.ErrInvalidSuffix) ||
		errors.Is(err, examples2pdf.ErrInvalidFormat) ||
		errors.Is(err, examples2pdf.ErrInvalidDocument) ||
		errors.Is(err, examples2pdf.ErrInvalidLayout) ||
		errors.Is(err, examples2pdf.ErrInvalidAsset) ||
		errors.Is(err, examples2pdf.ErrUnknownPreset) ||
		errors.Is(err, examples2pdf.ErrStyleNotFound) ||
		errors.Is(err, examples2pdf.ErrTemplateNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable suffix for err, or "".
// Batch failures carry their hints on each FAILED line instead.
func hintFor(err error) string {
	var be *batchError
	switch {
	case err == nil, errors.As(err, &be):
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, examples2pdf.ErrCompilerNotFound):
		var ce *compileError
		if errors.As(err, &ce) {
			return hints.ForCompilerNotFound(ce.command)
		}
		return ""
	case errors.Is(err, examples2pdf.ErrCompile):
		var ce *compileError
		if errors.As(err, &ce) {
			return hints.ForCompileFailed(ce.output)
		}
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	case errors.Is(err, examples2pdf.ErrReadSource):
		return hints.ForSourceNotFound()
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
