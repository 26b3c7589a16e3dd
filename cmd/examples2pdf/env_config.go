package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-examples2pdf/internal/config"
)

// envPrefix starts every variable read by the CLI.
const envPrefix = "EXAMPLES2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // EXAMPLES2PDF_CONFIG: config file name or path
	Input      string // EXAMPLES2PDF_INPUT: default source file
	OutputDir  string // EXAMPLES2PDF_OUTPUT_DIR: output directory
	Compiler   string // EXAMPLES2PDF_COMPILER: toolchain preset
	Format     string // EXAMPLES2PDF_FORMAT: output format
	Timeout    string // EXAMPLES2PDF_TIMEOUT: toolchain timeout
	Workers    int    // EXAMPLES2PDF_WORKERS: parallel workers
}

// knownEnvVars lists valid EXAMPLES2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"EXAMPLES2PDF_CONFIG":     true,
	"EXAMPLES2PDF_INPUT":      true,
	"EXAMPLES2PDF_OUTPUT_DIR": true,
	"EXAMPLES2PDF_COMPILER":   true,
	"EXAMPLES2PDF_FORMAT":     true,
	"EXAMPLES2PDF_TIMEOUT":    true,
	"EXAMPLES2PDF_WORKERS":    true,
	// Read by doctor
	"EXAMPLES2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("EXAMPLES2PDF_CONFIG"),
		Input:      os.Getenv("EXAMPLES2PDF_INPUT"),
		OutputDir:  os.Getenv("EXAMPLES2PDF_OUTPUT_DIR"),
		Compiler:   os.Getenv("EXAMPLES2PDF_COMPILER"),
		Format:     os.Getenv("EXAMPLES2PDF_FORMAT"),
	}

	if timeout := os.Getenv("EXAMPLES2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = timeout
		}
	}

	if workers := os.Getenv("EXAMPLES2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized EXAMPLES2PDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.File = env.Input
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Compiler != "" {
		cfg.Compiler.Preset = env.Compiler
	}
	if env.Timeout != "" {
		cfg.Compiler.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
