package main

// Notes:
// - Shared fixtures for the CLI tests: a fake toolchain runner, a
//   goroutine-safe buffer for stderr (the logger writes from workers),
//   and an Environment that never touches the real PATH or config dirs.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-examples2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// Test Fixtures
// ---------------------------------------------------------------------------

const sampleSource = `%% gates: logic gate symbols
% Gates
\def\x{1}
  % And
  % \AndGate(a,b)
  % Draws an and gate.
  % Example:
  % \draw (0,0) -- (1,0);
  % \AndGate(0,0)(2,0)
\def\y{2}
`

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// syncBuffer - bytes.Buffer safe for concurrent writers
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// ---------------------------------------------------------------------------
// fakeRunner - records toolchain calls
// ---------------------------------------------------------------------------

type runCall struct {
	Dir  string
	Name string
	Args []string
}

type fakeRunner struct {
	mu    sync.Mutex
	calls []runCall
	run   func(call runCall) (string, string, error)
}

func (r *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	call := runCall{Dir: dir, Name: name, Args: args}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
	if r.run == nil {
		return "", "", nil
	}
	return r.run(call)
}

func (r *fakeRunner) Calls() []runCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]runCall(nil), r.calls...)
}

// buildsPDF writes <stem>.pdf next to the .tex on a build step.
func buildsPDF(call runCall) (string, string, error) {
	if len(call.Args) == 0 || strings.HasPrefix(call.Args[0], "--clean") || call.Args[0] == "-c" {
		return "", "", nil
	}
	tex := call.Args[len(call.Args)-1]
	pdf := strings.TrimSuffix(tex, ".tex") + ".pdf"
	return "", "", os.WriteFile(filepath.Join(call.Dir, pdf), []byte("%PDF-1.5"), 0o600)
}

// notInstalled mimics exec.Cmd for a command missing from PATH.
func notInstalled(call runCall) (string, string, error) {
	return "", "", &exec.Error{Name: call.Name, Err: exec.ErrNotFound}
}

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *syncBuffer
	stderr *syncBuffer
	runner *fakeRunner
}

func newTestEnv(t *testing.T, run func(call runCall) (string, string, error)) *testEnv {
	t.Helper()
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	runner := &fakeRunner{run: run}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return fixedNow },
			Stdout: stdout,
			Stderr: stderr,
			Runner: runner,
			LookPath: func(file string) (string, error) {
				return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
			},
			Config: config.DefaultConfig(),
		},
		stdout: stdout,
		stderr: stderr,
		runner: runner,
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
