// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"bufio"
	"os"
	"strings"

	"github.com/alnah/go-examples2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return ContainerSignal() != ""
}

// ContainerSignal names the first container indicator found, or "".
// EXAMPLES2PDF_CONTAINER=1 forces detection.
func ContainerSignal() string {
	switch {
	case os.Getenv("EXAMPLES2PDF_CONTAINER") == "1":
		return "EXAMPLES2PDF_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return "/.dockerenv"
	case os.Getenv("container") != "":
		// podman, systemd-nspawn
		return "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return "KUBERNETES_SERVICE_HOST"
	}
	return ""
}

// CISignal names the CI variable found in the environment, or "".
func CISignal() string {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			return v
		}
	}
	return ""
}

// installHints maps toolchain commands to how they are usually installed.
var installHints = map[string]string{
	"rubber":   "install rubber (e.g. apt install rubber)",
	"latexmk":  "install latexmk (ships with TeX Live and MiKTeX)",
	"pdflatex": "install a TeX distribution (TeX Live, MiKTeX)",
}

// ForCompilerNotFound returns hints for a missing LaTeX toolchain command.
func ForCompilerNotFound(command string) string {
	var hints []string

	if h, ok := installHints[command]; ok {
		hints = append(hints, h)
	} else {
		hints = append(hints, "check that "+command+" is on PATH")
	}
	if IsInContainer() {
		hints = append(hints, "use a TeX Live based image in containers")
	}
	hints = append(hints, "or use --compiler none to only write the .tex file")

	return formatHints(hints)
}

// ForCompileFailed points at the LaTeX log of a failed build and quotes its
// first error when the log is readable.
func ForCompileFailed(texPath string) string {
	if texPath == "" {
		return ""
	}
	logPath := strings.TrimSuffix(texPath, ".tex") + ".log"
	if msg := FirstLaTeXError(logPath); msg != "" {
		return formatHints([]string{msg, "see " + logPath})
	}
	return format("see " + logPath + " for LaTeX errors")
}

// FirstLaTeXError returns the first "! ..." message of a LaTeX log with its
// "l.<n>" location when one follows. Empty if the log is missing or clean.
func FirstLaTeXError(logPath string) string {
	f, err := os.Open(logPath) // #nosec G304 -- log next to the generated .tex
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	var msg string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if msg == "" {
			if strings.HasPrefix(line, "! ") {
				msg = strings.TrimSpace(line[2:])
			}
			continue
		}
		if strings.HasPrefix(line, "l.") {
			loc, _, _ := strings.Cut(line, " ")
			return msg + " (" + loc + ")"
		}
		if strings.HasPrefix(line, "! ") {
			break
		}
	}
	return msg
}

// ForTimeout returns a hint about increasing timeout for slow builds.
func ForTimeout() string {
	return format("for large packages, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run 'examples2pdf init'"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-examples2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSourceNotFound returns hints for a missing LaTeX source.
func ForSourceNotFound() string {
	return format("pass the package source as argument, e.g. examples2pdf mypackage.tex")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
