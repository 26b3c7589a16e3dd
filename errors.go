package examples2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrTemplate    = errors.New("document template failed")
	ErrHTMLPreview = errors.New("HTML preview failed")

	// Toolchain errors.
	ErrCompile          = errors.New("LaTeX compilation failed")
	ErrCompilerNotFound = errors.New("LaTeX toolchain not found")
	ErrUnknownPreset    = errors.New("unknown toolchain preset")

	// Settings validation errors.
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidDocument = errors.New("invalid document settings")
	ErrInvalidLayout   = errors.New("invalid example layout")
	ErrInvalidAsset    = errors.New("invalid asset path")
)

// Input validation errors.
var (
	ErrNoSource      = errors.New("no source file given")
	ErrInvalidSuffix = errors.New("invalid output suffix")
)
