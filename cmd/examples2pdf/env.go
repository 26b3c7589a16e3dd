package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Runner   examples2pdf.CommandRunner
	LookPath func(file string) (string, error)

	// Config is used when neither --config nor EXAMPLES2PDF_CONFIG names
	// a file. Nil means look for examples2pdf.yaml in the standard places.
	Config *config.Config
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Runner:   &examples2pdf.ExecRunner{},
		LookPath: exec.LookPath,
	}
}
