//go:build !unix && !windows

package process

import "os/exec"

func hideWindow(*exec.Cmd) {}

func detach(*exec.Cmd) {}

func newConsole(*exec.Cmd) {}
