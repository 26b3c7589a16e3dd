package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/config"
	"github.com/alnah/go-examples2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputDir          = errors.New("failed to create output directory")
)

const (
	defaultSource     = "tikzircuit.tex"
	defaultConfigName = "examples2pdf"
	dirPermissions    = 0o750 // rwxr-x---: owner full, group read+execute
)

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the generation of every source.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(env.Stderr, logging.Options{
		Quiet:   flags.common.quiet,
		Verbose: flags.common.verbose,
		NoColor: os.Getenv("NO_COLOR") != "",
	})

	gen, err := newGenerator(cfg, log, env)
	if err != nil {
		return err
	}

	base, err := buildInput(cfg)
	if err != nil {
		return err
	}
	if err := ensureOutputDir(base.OutputDir); err != nil {
		return err
	}

	inputs, err := planInputs(gen, base, resolveSources(positionalArgs, cfg), log)
	if err != nil {
		return err
	}

	workers := resolveWorkers(cfg.Workers, len(inputs))
	log.Debug().Int("sources", len(inputs)).Int("workers", workers).Str("toolchain", gen.Toolchain().String()).Msg("starting")

	results := generateBatch(ctx, gen, inputs, workers)
	return summarize(results, flags.common, env)
}

// validateWorkers rejects worker counts outside [0, config.MaxWorkers].
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// loadConfig returns the configuration named by the flag, then by the
// environment. Without either it uses env.Config, or an examples2pdf.yaml
// found in the standard locations, or the defaults.
func loadConfig(flagValue, envValue string, env *Environment) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name != "" {
		return config.LoadConfig(name)
	}

	if env.Config != nil {
		cfg := *env.Config
		return &cfg, nil
	}
	cfg, err := config.LoadConfig(defaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// I/O flags
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.closeDangling {
		cfg.Example.CloseDangling = true
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}
	if flags.set["intro"] {
		intro := flags.document.intro
		cfg.Document.Intro = &intro
	}
	if flags.document.noTOC {
		toc := false
		cfg.Document.TOC = &toc
	}

	// Compiler flags
	if flags.compiler.preset != "" {
		cfg.Compiler.Preset = flags.compiler.preset
	}
	if flags.compiler.timeout != "" {
		cfg.Compiler.Timeout = flags.compiler.timeout
	}
	if flags.compiler.strict {
		cfg.Compiler.Strict = true
	}
	if flags.compiler.noClean {
		clean := false
		cfg.Compiler.Clean = &clean
	}
}

// buildToolchain starts from the configured preset and applies the
// command and argument overrides.
func buildToolchain(c config.CompilerConfig) (examples2pdf.Toolchain, error) {
	name := c.Preset
	if name == "" {
		name = examples2pdf.DefaultPreset
	}
	tc, err := examples2pdf.Preset(name)
	if err != nil {
		return examples2pdf.Toolchain{}, err
	}

	if c.Command != "" {
		tc.Name = ""
		tc.Command = c.Command
	}
	if c.BuildArgs != nil {
		tc.BuildArgs = c.BuildArgs
	}
	if c.CleanArgs != nil {
		tc.CleanArgs = c.CleanArgs
	}
	return tc, nil
}

// newGenerator builds the library generator from the merged config.
func newGenerator(cfg *config.Config, log zerolog.Logger, env *Environment) (*examples2pdf.Generator, error) {
	tc, err := buildToolchain(cfg.Compiler)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []examples2pdf.Option{
		examples2pdf.WithToolchain(tc),
		examples2pdf.WithLogger(log),
		examples2pdf.WithStrict(cfg.Compiler.Strict),
		examples2pdf.WithClock(env.Now),
	}
	if env.Runner != nil {
		opts = append(opts, examples2pdf.WithRunner(env.Runner))
	}
	if timeout > 0 {
		opts = append(opts, examples2pdf.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, examples2pdf.WithAssetPath(cfg.Assets.BasePath))
	}

	return examples2pdf.NewGenerator(opts...)
}

// buildInput maps the config onto a library Input without a source.
func buildInput(cfg *config.Config) (examples2pdf.Input, error) {
	format, err := examples2pdf.ParseFormat(cfg.Output.Format)
	if err != nil {
		return examples2pdf.Input{}, err
	}

	return examples2pdf.Input{
		OutputDir: cfg.Output.Dir,
		Suffix:    cfg.Output.Suffix,
		Format:    format,
		Document:  buildDocumentSettings(cfg.Document),
		Layout: examples2pdf.Layout{
			ListingWidth: cfg.Example.ListingWidth,
			DiagramWidth: cfg.Example.DiagramWidth,
			Environment:  cfg.Example.Environment,
			Label:        cfg.Example.Label,
		},
		CloseDangling: cfg.Example.CloseDangling,
		NoClean:       cfg.Compiler.Clean != nil && !*cfg.Compiler.Clean,
	}, nil
}

// buildDocumentSettings keeps nil slices nil so the library defaults apply;
// an explicit empty list in the config means none.
func buildDocumentSettings(d config.DocumentConfig) examples2pdf.DocumentSettings {
	settings := examples2pdf.DocumentSettings{
		Class:        d.Class,
		ClassOptions: d.ClassOptions,
		Preamble:     d.Preamble,
		Inputs:       d.Inputs,
		Title:        d.Title,
		Author:       d.Author,
		Date:         d.Date,
		TOC:          d.TOC,
		Intro:        d.Intro,
	}
	if d.Packages != nil {
		settings.Packages = make([]examples2pdf.Package, 0, len(d.Packages))
		for _, p := range d.Packages {
			settings.Packages = append(settings.Packages, examples2pdf.Package{Name: p.Name, Options: p.Options})
		}
	}
	return settings
}

// resolveSources returns the positional sources, else input.file, else
// tikzircuit.tex in the working directory.
func resolveSources(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	if cfg.Input.File != "" {
		return []string{cfg.Input.File}
	}
	return []string{defaultSource}
}

// planInputs builds one Input per source. A source named twice is kept
// once; two different sources deriving the same output path are a usage
// error, since their workers would share the document and the toolchain
// auxiliary files.
func planInputs(gen *examples2pdf.Generator, base examples2pdf.Input, sources []string, log zerolog.Logger) ([]examples2pdf.Input, error) {
	inputs := make([]examples2pdf.Input, 0, len(sources))
	seenSource := make(map[string]bool, len(sources))
	byOutput := make(map[string]string, len(sources))

	for _, src := range sources {
		key := pathKey(src)
		if seenSource[key] {
			log.Warn().Str("source", src).Msg("source given more than once, generating it once")
			continue
		}
		seenSource[key] = true

		in := base
		in.Source = src
		out, err := gen.OutputPath(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUsage, src, err)
		}
		if prev, ok := byOutput[pathKey(out)]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, src, out)
		}
		byOutput[pathKey(out)] = src
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// pathKey normalizes p for comparison, falling back to the cleaned path
// when it cannot be made absolute.
func pathKey(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// ensureOutputDir creates dir when set.
func ensureOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	return nil
}
