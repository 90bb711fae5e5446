//go:build unix

package process

import (
	"os/exec"
	"syscall"
)

func hideWindow(*exec.Cmd) {}

// detach puts the child in its own process group so terminal signals
// aimed at us do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func newConsole(*exec.Cmd) {}
