package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-examples2pdf/internal/fileutil"
	"github.com/alnah/go-examples2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxNameLength    = 100 // class, package, environment names
	MaxTitleLength   = 200
	MaxAuthorLength  = 200
	MaxDateLength    = 50
	MaxLineLength    = 500 // one raw preamble line
	MaxWidthLength   = 30  // "0.19\textwidth"
	MaxSuffixLength  = 50
	MaxArgLength     = 200
	MaxListLength    = 64
	MaxWorkers       = 32
	MaxTimeoutLength = 20
)

// Accepted enumerations.
var (
	Formats         = []string{"latex", "markdown", "md", "html"}
	CompilerPresets = []string{"rubber", "latexmk", "pdflatex", "none"}
)

// Config holds all configuration for document generation.
// Zero values mean "use the library default".
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Example  ExampleConfig  `yaml:"example"`
	Compiler CompilerConfig `yaml:"compiler"`
	Assets   AssetsConfig   `yaml:"assets"`
	Workers  int            `yaml:"workers"`
}

// InputConfig defines the source file.
type InputConfig struct {
	File string `yaml:"file"` // empty = tikzircuit.tex
}

// OutputConfig defines where and how results are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // empty = next to the source
	Suffix string `yaml:"suffix"` // empty = "-examples"
	Format string `yaml:"format"` // latex, markdown, html (empty = latex)
}

// PackageConfig is one \usepackage line.
type PackageConfig struct {
	Name    string   `yaml:"name"`
	Options []string `yaml:"options,omitempty"`
}

// DocumentConfig defines the document shell around the extracted content.
type DocumentConfig struct {
	Class        string          `yaml:"class"`
	ClassOptions []string        `yaml:"classOptions,omitempty"`
	Packages     []PackageConfig `yaml:"packages,omitempty"`
	Preamble     []string        `yaml:"preamble,omitempty"` // raw lines after \usepackage
	Inputs       []string        `yaml:"inputs,omitempty"`   // empty = source file stem
	Title        string          `yaml:"title"`              // empty = "Components and Examples of <stem>"
	Author       string          `yaml:"author"`
	Date         string          `yaml:"date"`            // "", "today", "auto", "auto:FORMAT", literal
	Intro        *string         `yaml:"intro,omitempty"` // nil = introExamples, "" = none
	TOC          *bool           `yaml:"toc,omitempty"`   // nil = true
}

// ExampleConfig defines how example blocks are typeset.
type ExampleConfig struct {
	ListingWidth  string `yaml:"listingWidth"` // empty = 0.8\textwidth
	DiagramWidth  string `yaml:"diagramWidth"` // empty = 0.19\textwidth
	Environment   string `yaml:"environment"`  // empty = tikzpicture
	Label         string `yaml:"label"`        // empty = "Example:"
	CloseDangling bool   `yaml:"closeDangling"`
}

// CompilerConfig defines the external LaTeX toolchain.
type CompilerConfig struct {
	Preset    string   `yaml:"preset"`              // rubber, latexmk, pdflatex, none (empty = rubber)
	Command   string   `yaml:"command"`             // overrides the preset command
	BuildArgs []string `yaml:"buildArgs,omitempty"` // overrides the preset build args
	CleanArgs []string `yaml:"cleanArgs,omitempty"` // overrides the preset clean args
	Clean     *bool    `yaml:"clean,omitempty"`     // nil = true
	Strict    bool     `yaml:"strict"`              // fail on non-zero exit
	Timeout   string   `yaml:"timeout"`             // Go duration, empty = library default
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns a neutral configuration; every field falls back to
// the library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// TimeoutDuration parses Compiler.Timeout. Empty returns 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Compiler.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Compiler.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: compiler.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: compiler.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks lengths and enumerations. Called by LoadConfig and again
// by the CLI after flags and environment are merged.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.file", c.Input.File, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.suffix", c.Output.Suffix, MaxSuffixLength},
		{"document.class", c.Document.Class, MaxNameLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxAuthorLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"example.listingWidth", c.Example.ListingWidth, MaxWidthLength},
		{"example.diagramWidth", c.Example.DiagramWidth, MaxWidthLength},
		{"example.environment", c.Example.Environment, MaxNameLength},
		{"example.label", c.Example.Label, MaxTitleLength},
		{"compiler.command", c.Compiler.Command, MaxPathLength},
		{"compiler.timeout", c.Compiler.Timeout, MaxTimeoutLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}
	if c.Document.Intro != nil {
		if err := validateFieldLength("document.intro", *c.Document.Intro, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateList("document.classOptions", c.Document.ClassOptions, MaxNameLength); err != nil {
		return err
	}
	if err := validateList("document.preamble", c.Document.Preamble, MaxLineLength); err != nil {
		return err
	}
	if err := validateList("document.inputs", c.Document.Inputs, MaxPathLength); err != nil {
		return err
	}
	if err := validateList("compiler.buildArgs", c.Compiler.BuildArgs, MaxArgLength); err != nil {
		return err
	}
	if err := validateList("compiler.cleanArgs", c.Compiler.CleanArgs, MaxArgLength); err != nil {
		return err
	}
	if len(c.Document.Packages) > MaxListLength {
		return fmt.Errorf("%w: document.packages has %d entries (max %d)", ErrInvalidValue, len(c.Document.Packages), MaxListLength)
	}
	for i, p := range c.Document.Packages {
		field := fmt.Sprintf("document.packages[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: %s.name: required", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field+".name", p.Name, MaxNameLength); err != nil {
			return err
		}
		if err := validateList(field+".options", p.Options, MaxNameLength); err != nil {
			return err
		}
	}

	if err := validateEnum("output.format", c.Output.Format, Formats); err != nil {
		return err
	}
	if err := validateEnum("compiler.preset", c.Compiler.Preset, CompilerPresets); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateList(fieldName string, values []string, maxLength int) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %s has %d entries (max %d)", ErrInvalidValue, fieldName, len(values), MaxListLength)
	}
	for i, v := range values {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), v, maxLength); err != nil {
			return err
		}
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %s[%d]: must be a single line", ErrInvalidValue, fieldName, i)
		}
	}
	return nil
}

func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is
// searched in standard locations. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		var se *yamlutil.SyntaxError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w: %s:\n%s", ErrConfigParse, configPath, se.Detail)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists, in lookup order, the files tried for a config name:
// the current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "go-examples2pdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// sectionComments head each top-level key of a written config.
var sectionComments = map[string]string{
	"$.input":    "Package source scanned for comment blocks.",
	"$.output":   "Destination, suffix and format (latex, markdown, html).",
	"$.document": "Document shell. Remove packages or intro to fall back to the defaults.",
	"$.example":  "Layout of each example: listing beside its rendered diagram.",
	"$.compiler": "LaTeX toolchain: rubber, latexmk, pdflatex or none.",
	"$.assets":   "Directory with templates/ and styles/ overriding the built-in assets.",
	"$.workers":  "Parallel generations when several sources are given (0 = CPU count).",
}

// Marshal encodes cfg as YAML with a comment above each section, for
// `examples2pdf init`.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.MarshalCommented(cfg, sectionComments)
}
