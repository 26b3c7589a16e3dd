package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/config"
	"github.com/alnah/go-examples2pdf/internal/fileutil"
)

// ErrConfigExists is returned by init when the target file exists.
var ErrConfigExists = errors.New("config file already exists")

// filePermissions is used for the written config.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// starterConfig returns a config with the library defaults spelled out.
// Title and inputs stay unset since they follow the source name.
func starterConfig() *config.Config {
	clean := true
	d := examples2pdf.DefaultDocumentSettings(fileutil.Stem(defaultSource))
	packages := make([]config.PackageConfig, 0, len(d.Packages))
	for _, p := range d.Packages {
		packages = append(packages, config.PackageConfig{Name: p.Name, Options: p.Options})
	}

	layout := examples2pdf.DefaultLayout()
	tc, _ := examples2pdf.Preset(examples2pdf.DefaultPreset)

	return &config.Config{
		Input: config.InputConfig{File: defaultSource},
		Output: config.OutputConfig{
			Suffix: examples2pdf.DefaultSuffix,
			Format: string(examples2pdf.FormatLaTeX),
		},
		Document: config.DocumentConfig{
			Class:        d.Class,
			ClassOptions: d.ClassOptions,
			Packages:     packages,
			Preamble:     d.Preamble,
			Intro:        d.Intro,
			TOC:          d.TOC,
		},
		Example: config.ExampleConfig{
			ListingWidth: layout.ListingWidth,
			DiagramWidth: layout.DiagramWidth,
			Environment:  layout.Environment,
			Label:        layout.Label,
		},
		Compiler: config.CompilerConfig{
			Preset:  tc.Name,
			Clean:   &clean,
			Timeout: examples2pdf.DefaultCompileTimeout.String(),
		},
	}
}

// runInit writes the starter config to the given path, or to
// examples2pdf.yaml in the working directory.
func runInit(args []string, env *Environment) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInitUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: init takes at most one path", ErrUsage)
	}

	path := defaultConfigName + ".yaml"
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	if !*force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.Marshal(starterConfig())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	// #nosec G306 -- config files are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	return nil
}

// printInitUsage prints help for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: examples2pdf init [path] [--force]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a config file with every default spelled out")
	fmt.Fprintln(w, "(default path: examples2pdf.yaml).")
}
