//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; Wait still reaps the leader.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// isolate starts the command in its own process group so that
// KillProcessGroup reaches tools that fork helpers (gs, lilypond).
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
