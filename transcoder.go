package examples2pdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MaxLineLength bounds a single source line.
const MaxLineLength = 1 << 20

// Stats counts what a transcode pass emitted.
type Stats struct {
	Lines       int  // source lines read
	Sections    int  // section headings
	Subsections int  // subsection headings
	Definitions int  // verbatim definition blocks
	TextLines   int  // plain paragraph lines
	Examples    int  // closed example blocks
	CodeLines   int  // uncommented lines, skipped
	Discarded   int  // %% lines, skipped
	Dangling    bool // input ended inside an example block
}

// TranscodeOptions configures a transcode pass.
type TranscodeOptions struct {
	// CloseDangling closes an example block left open at end of input
	// instead of dropping its closing fragments.
	CloseDangling bool
	Logger        *zerolog.Logger
}

// Transcoder classifies source lines one at a time and forwards the
// recognized constructs to an Emitter. It is single-owner and not safe for
// concurrent use.
type Transcoder struct {
	emitter Emitter
	log     zerolog.Logger
	state   State
	example strings.Builder
	stats   Stats
}

// NewTranscoder returns a Transcoder in StateNone.
func NewTranscoder(e Emitter) *Transcoder {
	return &Transcoder{emitter: e, log: zerolog.Nop()}
}

// State returns the classification of the last line fed.
func (t *Transcoder) State() State { return t.state }

// Pending returns the diagram source buffered for the open example block.
func (t *Transcoder) Pending() string { return t.example.String() }

// Stats returns the counters accumulated so far.
func (t *Transcoder) Stats() Stats { return t.stats }

// Feed processes one source line. A trailing "\n" or "\r\n" is removed
// before classification.
func (t *Transcoder) Feed(line string) error {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	t.stats.Lines++

	switch {
	case strings.HasPrefix(line, "%%"):
		t.stats.Discarded++
		return t.advance(StateNone, nil)

	case strings.HasPrefix(line, "%"):
		title := dropMarker(line)
		return t.advance(StateSection, func() error {
			t.stats.Sections++
			return t.emitter.Section(title)
		})
	}

	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "%") {
		t.stats.CodeLines++
		return t.advance(StateCode, nil)
	}
	return t.content(strings.TrimSpace(dropMarker(trimmed)))
}

// content dispatches an indented comment line on the current state.
func (t *Transcoder) content(text string) error {
	switch t.state {
	case StateSection, StateCode:
		return t.advance(StateSubsection, func() error {
			t.stats.Subsections++
			return t.emitter.Subsection(text)
		})

	case StateSubsection:
		return t.advance(StateDefinition, func() error {
			t.stats.Definitions++
			return t.emitter.Definition(text)
		})

	case StateText, StateDefinition:
		if isExampleCue(text) {
			return t.advance(StateExample, t.emitter.OpenExample)
		}
		return t.advance(StateText, func() error {
			t.stats.TextLines++
			return t.emitter.Text(text)
		})

	case StateExample:
		// Every line after the cue is both listed and drawn.
		return t.advance(StateExample, func() error {
			t.example.WriteString(text)
			t.example.WriteString("\n")
			return t.emitter.ExampleLine(text)
		})

	case StateNone:
		// Content before any section, or right after a %% line.
		return t.advance(StateText, func() error {
			t.stats.TextLines++
			return t.emitter.Text(text)
		})

	default:
		return fmt.Errorf("transcoder in unknown state %d", t.state)
	}
}

// advance moves to next, closing an open example block first when the
// machine leaves StateExample, then runs emit.
func (t *Transcoder) advance(next State, emit func() error) error {
	if t.state == StateExample && next != StateExample {
		if err := t.closeExample(); err != nil {
			return err
		}
	}
	t.state = next
	if emit == nil {
		return nil
	}
	if err := emit(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func (t *Transcoder) closeExample() error {
	diagram := t.example.String()
	t.example.Reset()
	t.stats.Examples++
	if err := t.emitter.CloseExample(diagram); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// Finish handles end of input. An example block still open is dropped
// unless closeDangling is set; either way Stats.Dangling records it.
func (t *Transcoder) Finish(closeDangling bool) error {
	if t.state != StateExample {
		return nil
	}
	t.stats.Dangling = true
	if closeDangling {
		t.log.Warn().Int("line", t.stats.Lines).Msg("input ends inside an example block, closing it")
		return t.closeExample()
	}
	t.log.Warn().Int("line", t.stats.Lines).Msg("input ends inside an example block, block left unclosed")
	t.example.Reset()
	return nil
}

// Transcode feeds every line of r through a new Transcoder emitting to e.
// ctx is checked between lines.
func Transcode(ctx context.Context, r io.Reader, e Emitter, opts TranscodeOptions) (Stats, error) {
	t := NewTranscoder(e)
	if opts.Logger != nil {
		t.log = *opts.Logger
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return t.stats, err
		}
		if err := t.Feed(scanner.Text()); err != nil {
			return t.stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return t.stats, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	if err := t.Finish(opts.CloseDangling); err != nil {
		return t.stats, err
	}
	t.log.Debug().
		Int("lines", t.stats.Lines).
		Int("sections", t.stats.Sections).
		Int("examples", t.stats.Examples).
		Msg("transcoded")
	return t.stats, nil
}

// dropMarker removes the comment marker and the character after it, which
// may span several bytes.
func dropMarker(s string) string {
	if len(s) <= 1 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	return s[1+size:]
}

func isExampleCue(s string) bool {
	return strings.HasPrefix(s, "example") || strings.HasPrefix(s, "Example")
}
