// Package shell provides the process launcher adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultShell runs shell command lines when a task has no shell override.
const DefaultShell = "/bin/sh"

// signalExitBase is added to the signal number of a child killed by a signal.
const signalExitBase = 128

// killGrace bounds how long Launch waits for output pipes after the child is killed.
const killGrace = 2 * time.Second

// Launcher implements ports.Launcher using os/exec.
type Launcher struct {
	logger ports.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStreams replaces the inherited standard streams.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// NewLauncher creates a new Launcher attached to the process standard streams.
func NewLauncher(logger ports.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch runs cmd with env and waits for it to exit.
// A non-zero exit is reported through the status, not the error.
func (l *Launcher) Launch(ctx context.Context, cmd domain.CommandLine, env []string) (int, error) {
	name, args := argv(cmd)
	if name == "" {
		return 0, zerr.Wrap(exec.ErrNotFound, "empty command")
	}

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // command comes from the task definition
	c.Args[0] = name
	c.Env = env
	c.Stdin = l.stdin
	c.Stdout = l.stdout
	c.Stderr = l.stderr
	c.WaitDelay = killGrace

	l.logger.Debug("Parsed Command: " + cmd.String())

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitStatus(exitErr)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return code, zerr.Wrap(ctxErr, "task interrupted")
		}
		return code, nil
	}

	return -1, zerr.With(zerr.Wrap(err, "cannot start command"), "command", name)
}

// exitStatus returns the child exit code, mapping a death by signal to 128+signo
// the way shells report it.
func exitStatus(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}
	return exitErr.ExitCode()
}

// argv turns a command line into the program and its arguments.
func argv(cmd domain.CommandLine) (string, []string) {
	if !cmd.Shell {
		return cmd.Program, cmd.Args
	}

	if cmd.ShellExecutable == "" {
		return DefaultShell, []string{"-c", cmd.Script}
	}

	args := make([]string, 0, len(cmd.ShellArgs)+2)
	args = append(args, cmd.ShellArgs...)
	if len(cmd.ShellArgs) == 0 {
		args = append(args, "-c")
	}
	args = append(args, cmd.Script)
	return cmd.ShellExecutable, args
}

// lookPath searches the PATH of env rather than the parent process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
