package examples2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-examples2pdf/internal/process"
)

// Toolchain presets.
const (
	PresetRubber   = "rubber"
	PresetLatexmk  = "latexmk"
	PresetPdflatex = "pdflatex"
	PresetNone     = "none"
)

// DefaultPreset is the toolchain used when none is configured.
const DefaultPreset = PresetRubber

// DefaultCompileTimeout bounds each toolchain call.
const DefaultCompileTimeout = 5 * time.Minute

// killGrace is how long a cancelled toolchain gets to exit before its
// output pipes are abandoned.
const killGrace = 5 * time.Second

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Each command runs in
// its own process group, killed as a whole when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = killGrace

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Toolchain describes the external program that turns the generated .tex
// file into a PDF. An empty Command disables compilation.
type Toolchain struct {
	Name      string
	Command   string
	BuildArgs []string // placed before the file name
	CleanArgs []string // nil means there is no clean step
}

var presets = map[string]Toolchain{
	PresetRubber: {
		Name:      PresetRubber,
		Command:   "rubber",
		BuildArgs: []string{"--pdf"},
		CleanArgs: []string{"--clean"},
	},
	PresetLatexmk: {
		Name:      PresetLatexmk,
		Command:   "latexmk",
		BuildArgs: []string{"-pdf"},
		CleanArgs: []string{"-c"},
	},
	PresetPdflatex: {
		Name:      PresetPdflatex,
		Command:   "pdflatex",
		BuildArgs: []string{"-interaction=nonstopmode"},
	},
	PresetNone: {Name: PresetNone},
}

// Preset returns a built-in toolchain by name (case-insensitive).
func Preset(name string) (Toolchain, error) {
	tc, ok := presets[strings.ToLower(name)]
	if !ok {
		return Toolchain{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	// Copy the slices so callers cannot alter the table.
	tc.BuildArgs = append([]string(nil), tc.BuildArgs...)
	if tc.CleanArgs != nil {
		tc.CleanArgs = append([]string{}, tc.CleanArgs...)
	}
	return tc, nil
}

// PresetNames lists the built-in toolchains, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Disabled reports whether the toolchain skips compilation.
func (tc Toolchain) Disabled() bool {
	return tc.Command == ""
}

// HasClean reports whether the toolchain has a clean step.
func (tc Toolchain) HasClean() bool {
	return tc.CleanArgs != nil
}

// Available looks the command up in PATH and returns its location.
func (tc Toolchain) Available() (string, error) {
	if tc.Disabled() {
		return "", nil
	}
	path, err := exec.LookPath(tc.Command)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCompilerNotFound, tc.Command)
	}
	return path, nil
}

// BuildCommand returns the argument vector of the build step for file.
func (tc Toolchain) BuildCommand(file string) []string {
	return tc.command(tc.BuildArgs, file)
}

// CleanCommand returns the argument vector of the clean step for file, or
// nil when there is none.
func (tc Toolchain) CleanCommand(file string) []string {
	if !tc.HasClean() {
		return nil
	}
	return tc.command(tc.CleanArgs, file)
}

func (tc Toolchain) command(args []string, file string) []string {
	argv := make([]string, 0, len(args)+2)
	argv = append(argv, tc.Command)
	argv = append(argv, args...)
	return append(argv, file)
}

// String returns the preset name, or the command for custom toolchains.
func (tc Toolchain) String() string {
	if tc.Name != "" {
		return tc.Name
	}
	if tc.Disabled() {
		return PresetNone
	}
	return tc.Command
}

// StepResult describes one toolchain call.
type StepResult struct {
	Args     []string
	Stdout   string
	Stderr   string
	Err      error
	Duration time.Duration
}

// Failed reports whether the call did not exit cleanly.
func (s *StepResult) Failed() bool {
	return s != nil && s.Err != nil
}

// notFound reports whether the call failed because the command is missing.
func (s *StepResult) notFound() bool {
	return s != nil && errors.Is(s.Err, exec.ErrNotFound)
}

// runStep runs argv in dir bounded by timeout.
func runStep(ctx context.Context, r CommandRunner, dir string, argv []string, timeout time.Duration) *StepResult {
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, err := r.Run(stepCtx, dir, argv[0], argv[1:]...)
	if err != nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		err = fmt.Errorf("timed out after %s: %w", timeout, context.DeadlineExceeded)
	}
	return &StepResult{
		Args:     argv,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
		Duration: time.Since(start),
	}
}
