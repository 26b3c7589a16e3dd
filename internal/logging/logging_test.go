package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		quiet   bool
		verbose bool
		want    zerolog.Level
	}{
		{"default", false, false, zerolog.WarnLevel},
		{"verbose", false, true, zerolog.DebugLevel},
		{"quiet", true, false, zerolog.ErrorLevel},
		{"quiet wins", true, true, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Level(tt.quiet, tt.verbose); got != tt.want {
				t.Errorf("Level(%v, %v) = %v, want %v", tt.quiet, tt.verbose, got, tt.want)
			}
		})
	}
}

func TestNew_DefaultFiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Options{NoColor: true})

	log.Debug().Msg("hidden")
	log.Warn().Str("source", "tikzircuit.tex").Msg("example block never closed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at default level:\n%s", out)
	}
	if !strings.Contains(out, "example block never closed") {
		t.Errorf("warning missing:\n%s", out)
	}
	if !strings.Contains(out, "source=tikzircuit.tex") {
		t.Errorf("field missing:\n%s", out)
	}
}

func TestNew_VerboseWritesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Options{Verbose: true, NoColor: true})

	log.Debug().Msg("transcoding")

	if !strings.Contains(buf.String(), "transcoding") {
		t.Errorf("debug line missing in verbose mode:\n%s", buf.String())
	}
}

func TestNew_QuietDropsWarnings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Options{Quiet: true, NoColor: true})

	log.Warn().Msg("compiler exited with status 1")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote output:\n%s", buf.String())
	}
}
