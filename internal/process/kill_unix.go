//go:build !windows

// Package process isolates toolchain subprocesses in their own process group
// so that a timeout also stops the helpers they spawn (pdflatex under rubber).
package process

import (
	"os/exec"
	"syscall"
)

// Isolate makes cmd the leader of a new process group. Call before Start.
func Isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; exec.Cmd still kills the leader if this fails.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
