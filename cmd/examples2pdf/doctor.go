package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/fileutil"
	"github.com/alnah/go-examples2pdf/internal/hints"
)

// doctorProbeTimeout bounds each external probe.
const doctorProbeTimeout = 5 * time.Second

// level grades a doctor finding.
type level string

const (
	levelOK    level = "ok"
	levelMiss  level = "missing" // optional component absent
	levelWarn  level = "warn"
	levelError level = "error"
)

// Report sections, in print order.
const (
	sectionToolchain   = "LaTeX"
	sectionEnvironment = "Environment"
	sectionSystem      = "System"
)

// finding is one line of the doctor report.
type finding struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Level   level  `json:"level"`
	Detail  string `json:"detail,omitempty"`
	Version string `json:"version,omitempty"`
}

// doctorReport is printed as text or, with --json, encoded as is.
type doctorReport struct {
	Status   string    `json:"status"` // ready, warnings, errors
	Platform string    `json:"platform"`
	Findings []finding `json:"findings"`
	Advice   []string  `json:"advice,omitempty"`
}

func (r *doctorReport) add(f finding) { r.Findings = append(r.Findings, f) }

func (r *doctorReport) count(l level) int {
	n := 0
	for _, f := range r.Findings {
		if f.Level == l {
			n++
		}
	}
	return n
}

// doctorCheck appends its findings to the report.
type doctorCheck func(ctx context.Context, env *Environment, r *doctorReport)

var doctorChecks = []doctorCheck{
	checkToolchains,
	checkTikZ,
	checkEnvironment,
	checkSystem,
}

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when generation can run (warnings included), 1 otherwise.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	r := runDoctor(context.Background(), env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
	} else {
		printDoctorReport(env.Stdout, r)
	}

	if r.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check and derives the status.
func runDoctor(ctx context.Context, env *Environment) *doctorReport {
	r := &doctorReport{Platform: runtime.GOOS + "/" + runtime.GOARCH}
	for _, check := range doctorChecks {
		check(ctx, env, r)
	}

	switch {
	case r.count(levelError) > 0:
		r.Status = "errors"
	case r.count(levelWarn) > 0:
		r.Status = "warnings"
	default:
		r.Status = "ready"
	}
	return r
}

// checkToolchains looks up every preset that runs a command. No toolchain
// at all is an error; a missing default is a warning.
func checkToolchains(ctx context.Context, env *Environment, r *doctorReport) {
	var installed []string
	defaultFound := false

	for _, name := range examples2pdf.PresetNames() {
		tc, err := examples2pdf.Preset(name)
		if err != nil || tc.Disabled() {
			continue
		}
		label := name
		if name == examples2pdf.DefaultPreset {
			label += " (default)"
		}

		path, err := env.LookPath(tc.Command)
		if err != nil {
			r.add(finding{Section: sectionToolchain, Name: label, Level: levelMiss})
			continue
		}
		r.add(finding{
			Section: sectionToolchain,
			Name:    label,
			Level:   levelOK,
			Detail:  path,
			Version: probeVersion(ctx, env, tc.Command),
		})
		installed = append(installed, name)
		if name == examples2pdf.DefaultPreset {
			defaultFound = true
		}
	}

	switch {
	case len(installed) == 0:
		r.add(finding{Section: sectionToolchain, Name: "toolchain", Level: levelError,
			Detail: "No LaTeX toolchain found"})
		r.Advice = append(r.Advice,
			"Install rubber, latexmk, or a TeX distribution, or use --compiler none")
	case !defaultFound:
		r.add(finding{Section: sectionToolchain, Name: "toolchain", Level: levelWarn,
			Detail: fmt.Sprintf("Default toolchain %s not found", examples2pdf.DefaultPreset)})
		r.Advice = append(r.Advice,
			"Use --compiler "+installed[0]+" or set compiler.preset in the config")
	}
}

// probeVersion returns the first line of `command --version`, or "".
func probeVersion(ctx context.Context, env *Environment, command string) string {
	stdout, err := probe(ctx, env, command, "--version")
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(line)
}

func probe(ctx context.Context, env *Environment, name string, args ...string) (string, error) {
	if env.Runner == nil {
		return "", errors.New("no command runner")
	}
	ctx, cancel := context.WithTimeout(ctx, doctorProbeTimeout)
	defer cancel()
	stdout, _, err := env.Runner.Run(ctx, "", name, args...)
	return strings.TrimSpace(stdout), err
}

// checkTikZ asks kpsewhich for tikz.sty. Without kpsewhich (MiKTeX on
// demand installs, for instance) the check is skipped.
func checkTikZ(ctx context.Context, env *Environment, r *doctorReport) {
	if _, err := env.LookPath("kpsewhich"); err != nil || env.Runner == nil {
		return
	}
	path, err := probe(ctx, env, "kpsewhich", "tikz.sty")
	if err == nil && path != "" {
		r.add(finding{Section: sectionToolchain, Name: "tikz.sty", Level: levelOK, Detail: path})
		return
	}
	r.add(finding{Section: sectionToolchain, Name: "tikz.sty", Level: levelWarn,
		Detail: "not found by kpsewhich"})
	r.Advice = append(r.Advice, "Example diagrams need the pgf/TikZ package")
}

// checkEnvironment reports container and CI detection; both are informative.
func checkEnvironment(_ context.Context, _ *Environment, r *doctorReport) {
	r.add(finding{Section: sectionEnvironment, Name: "Platform", Level: levelOK, Detail: r.Platform})
	if signal := hints.ContainerSignal(); signal != "" {
		r.add(finding{Section: sectionEnvironment, Name: "Container", Level: levelOK,
			Detail: "detected (" + signal + ")"})
	}
	if signal := hints.CISignal(); signal != "" {
		r.add(finding{Section: sectionEnvironment, Name: "CI", Level: levelOK,
			Detail: "detected (" + signal + ")"})
	}
}

// checkSystem verifies the temp and working directories are writable. The
// toolchain writes its auxiliary files next to the generated .tex.
func checkSystem(_ context.Context, _ *Environment, r *doctorReport) {
	tmp := os.TempDir()
	if err := fileutil.DirWritable(tmp); err != nil {
		r.add(finding{Section: sectionSystem, Name: "Temp directory", Level: levelError,
			Detail: "not writable: " + tmp})
	} else {
		r.add(finding{Section: sectionSystem, Name: "Temp directory", Level: levelOK, Detail: "writable"})
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	if err := fileutil.DirWritable(cwd); err != nil {
		r.add(finding{Section: sectionSystem, Name: "Working directory", Level: levelWarn,
			Detail: "not writable: " + cwd})
		r.Advice = append(r.Advice, "Use --output to write elsewhere")
	} else {
		r.add(finding{Section: sectionSystem, Name: "Working directory", Level: levelOK, Detail: "writable"})
	}
}

var levelTags = map[level]string{
	levelOK:    "[OK]",
	levelMiss:  "[--]",
	levelWarn:  "[WARN]",
	levelError: "[ERROR]",
}

// printDoctorReport writes the report grouped by section.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "examples2pdf doctor")

	for _, section := range []string{sectionToolchain, sectionEnvironment, sectionSystem} {
		fmt.Fprintf(w, "\n%s\n", section)
		for _, f := range r.Findings {
			if f.Section != section {
				continue
			}
			detail := f.Detail
			if f.Level == levelMiss {
				detail = "not found"
			}
			fmt.Fprintf(w, "  %s %s: %s\n", levelTags[f.Level], f.Name, detail)
			if f.Version != "" {
				fmt.Fprintf(w, "       %s\n", f.Version)
			}
		}
	}

	if len(r.Advice) > 0 {
		fmt.Fprintln(w, "\nAdvice:")
		for _, a := range r.Advice {
			fmt.Fprintf(w, "  - %s\n", a)
		}
	}

	fmt.Fprintln(w)
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
