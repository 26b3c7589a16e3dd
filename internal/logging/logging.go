// Package logging builds the zerolog logger used for diagnostics.
//
// User-facing results ("Created x.pdf") are printed by the CLI directly;
// this logger carries warnings and verbose tracing on stderr.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	Quiet   bool // only errors
	Verbose bool // debug level with timestamps
	NoColor bool
}

// Level maps CLI verbosity flags to a zerolog level. Quiet wins over verbose.
func Level(quiet, verbose bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.ErrorLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a console logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: time.TimeOnly,
	}
	if !opts.Verbose {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	return zerolog.New(cw).
		Level(Level(opts.Quiet, opts.Verbose)).
		With().
		Timestamp().
		Logger()
}
