// Package platform identifies the operating system conventions that path
// translation and process execution follow.
//
// The OS is a closed set of three values. It is normally resolved once at
// startup from configuration (IC_OS) and falls back to the host OS; keeping
// it as an explicit value rather than reading runtime.GOOS everywhere lets
// tests exercise Windows behaviour on any host.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// OS is one of the operating systems a pipeline path can be written for.
type OS string

const (
	Windows OS = "win"
	Mac     OS = "mac"
	Linux   OS = "linux"
)

// All lists every supported OS in rule-column order.
var All = []OS{Mac, Windows, Linux}

// Host returns the OS the process is running on. Unknown Unix-likes are
// treated as Linux.
func Host() OS {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Mac
	default:
		return Linux
	}
}

// Parse accepts the short identifiers used by the pipeline environment as
// well as the GOOS spellings.
func Parse(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "windows":
		return Windows, nil
	case "mac", "darwin", "macos", "osx":
		return Mac, nil
	case "linux":
		return Linux, nil
	case "":
		return Host(), nil
	}
	return "", fmt.Errorf("unknown operating system %q", s)
}

// String implements fmt.Stringer.
func (o OS) String() string {
	return string(o)
}

// IsWindows reports whether paths for this OS use drive letters and
// backslash separators.
func (o OS) IsWindows() bool {
	return o == Windows
}

// Separator is the native path separator.
func (o OS) Separator() string {
	if o.IsWindows() {
		return `\`
	}
	return "/"
}

// Others returns the two operating systems other than o, in rule-column order.
func (o OS) Others() []OS {
	others := make([]OS, 0, len(All)-1)
	for _, candidate := range All {
		if candidate != o {
			others = append(others, candidate)
		}
	}
	return others
}

// ShellCommand returns the program and flag used to run a single command
// line through the platform shell.
func (o OS) ShellCommand() (string, string) {
	if o.IsWindows() {
		return "cmd", "/C"
	}
	return "/bin/sh", "-c"
}

// DefaultShell is the interactive shell used when none is configured.
func (o OS) DefaultShell() string {
	if o.IsWindows() {
		return "cmd.exe"
	}
	return "/bin/sh"
}

// OpenCommand returns the command that hands a path or URL to the desktop's
// default handler.
func (o OS) OpenCommand(target string) []string {
	switch o {
	case Windows:
		// The empty argument is the window title expected by start.
		return []string{"cmd", "/C", "start", "", target}
	case Mac:
		return []string{"open", target}
	default:
		return []string{"xdg-open", target}
	}
}
