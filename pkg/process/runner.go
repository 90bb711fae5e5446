package process

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/logging"
	"github.com/icarus-vfx/icshared/pkg/paths"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

// Runner starts processes on behalf of the pipeline tools.
type Runner struct {
	// Streams given to processes that are not captured. They default to
	// the current process's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	os       platform.OS
	shell    string
	tr       *paths.Translator
	reporter logging.Reporter
	logger   zerolog.Logger
}

// NewRunner creates a Runner for s.OS. A nil translator leaves paths given
// to Open untouched and a nil reporter discards messages.
func NewRunner(s *config.Settings, tr *paths.Translator, reporter logging.Reporter) *Runner {
	if reporter == nil {
		reporter = logging.Discard()
	}
	return &Runner{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		os:       s.OS,
		shell:    s.Shell,
		tr:       tr,
		reporter: reporter,
		logger:   logging.GetLogger("process"),
	}
}

// Execute runs args and waits for it, returning its standard output. A
// nonzero exit is an ErrCommandFailed error whose message is what the
// program wrote to standard error (or, failing that, standard output); the
// standard output is kept under the "output" detail. Output that is not
// valid UTF-8 is repaired rather than rejected.
func (r *Runner) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "no command given")
	}
	r.reporter.Detail(fmt.Sprint(args))
	logging.LogCommand(r.logger, args[0], args[1:])

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)

	err := cmd.Run()
	out := decode(stdout.Bytes())
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return "", errors.FromOS(err, "Cannot run %s", args[0])
	}

	msg := strings.TrimSpace(decode(stderr.Bytes()))
	if msg == "" {
		msg = strings.TrimSpace(out)
	}
	if msg == "" {
		msg = fmt.Sprintf("%s: %s", args[0], exitErr)
	}
	return "", errors.New(errors.ErrCommandFailed, msg).
		WithDetail("output", out).
		WithDetail("exit_code", exitErr.ExitCode())
}

// Popen joins args into one command line and starts it through the
// platform shell without waiting. Start failures are logged, never
// returned.
func (r *Runner) Popen(args []string) {
	line := strings.Join(args, " ")
	r.reporter.Detail(line)

	prog, flag := r.os.ShellCommand()
	cmd := exec.Command(prog, flag, line)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	detach(cmd)

	if err := cmd.Start(); err != nil {
		r.logger.Error().Err(err).Str("command", line).Msg("failed to start")
		return
	}
	go func() { _ = cmd.Wait() }()
}

// Call runs the same command line Popen would, but waits for it to finish.
// Output is not captured. A nonzero exit is reported as ErrCommandFailed.
func (r *Runner) Call(ctx context.Context, args []string) error {
	line := strings.Join(args, " ")
	r.reporter.Detail(fmt.Sprint(args))

	prog, flag := r.os.ShellCommand()
	cmd := exec.CommandContext(ctx, prog, flag, line)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	return r.wait(cmd, line)
}

// Shell starts the configured interactive shell. On Windows it opens in its
// own console and Shell returns immediately; elsewhere it shares the
// terminal and Shell returns when the user exits it.
func (r *Runner) Shell(ctx context.Context) error {
	if r.shell == "" {
		return errors.New(errors.ErrEnvironment, "no shell configured")
	}
	r.reporter.Detail(r.shell)

	prog, flag := r.os.ShellCommand()
	if r.os.IsWindows() {
		cmd := exec.Command(prog, flag, r.shell)
		newConsole(cmd)
		if err := cmd.Start(); err != nil {
			return errors.FromOS(err, "Cannot start shell %s", r.shell)
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}

	cmd := exec.CommandContext(ctx, prog, flag, r.shell)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.wait(cmd, r.shell)
}

// Open asks the desktop to open p, a file, directory or URL, with its
// default application. p is translated for the current OS first.
//
// Problems with the environment, such as a missing path or no handler
// program, are logged and reported as false with a nil error. Other
// failures are returned.
func (r *Runner) Open(p string) (bool, error) {
	if p == "" {
		return false, errors.New(errors.ErrInvalidInput, "nothing to open")
	}
	r.reporter.Detail(fmt.Sprintf("open %q", p))

	target := r.tr.Translate(p)
	if r.os.IsWindows() && strings.HasPrefix(target, "//") {
		target = paths.ToNative(target, true)
	}

	if !strings.Contains(target, "://") {
		if _, err := os.Stat(target); err != nil {
			return r.environmentFailure(errors.FromOS(err, "Cannot open %s", target))
		}
	}

	args := r.os.OpenCommand(target)
	cmd := exec.Command(args[0], args[1:]...)
	hideWindow(cmd)
	if err := cmd.Start(); err != nil {
		return r.environmentFailure(errors.FromOS(err, "Cannot open %s", target))
	}
	go func() { _ = cmd.Wait() }()
	return true, nil
}

func (r *Runner) environmentFailure(err *errors.Error) (bool, error) {
	if isEnvironmentError(err) {
		r.reporter.Error(errors.Message(err))
		return false, nil
	}
	return false, err
}

func (r *Runner) wait(cmd *exec.Cmd, line string) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.Newf(errors.ErrCommandFailed, "%s exited with status %d", line, exitErr.ExitCode()).
			WithDetail("exit_code", exitErr.ExitCode())
	}
	return errors.FromOS(err, "Cannot run %s", line)
}

// isEnvironmentError reports whether err came from the operating system
// rather than from the caller.
func isEnvironmentError(err error) bool {
	var pathErr *fs.PathError
	var execErr *exec.Error
	var sysErr *os.SyscallError
	return stderrors.As(err, &pathErr) || stderrors.As(err, &execErr) || stderrors.As(err, &sysErr)
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
