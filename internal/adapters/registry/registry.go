// Package registry looks up package versions through the workspace registry script.
package registry

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultCommand is the registry lookup run when no override is configured.
// The package name is appended as the last argument.
const DefaultCommand = "xonsh " + domain.RegistryScript + " package latest version"

var _ ports.PackageRegistry = (*Registry)(nil)

// Registry implements ports.PackageRegistry by running an external command.
type Registry struct {
	dir     string
	command string
	logger  ports.Logger
}

// New creates a Registry running command from dir.
// An empty command selects DefaultCommand.
func New(dir, command string, logger ports.Logger) *Registry {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	return &Registry{dir: dir, command: command, logger: logger}
}

// LatestVersion runs the lookup command and parses its output as an integer.
func (r *Registry) LatestVersion(ctx context.Context, packageName string) (int, error) {
	argv, err := shellwords.Parse(r.command)
	if err != nil || len(argv) == 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrCollaboratorFailure, "invalid registry command"), "command", r.command)
	}
	argv = append(argv, packageName)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // command is operator configured
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		failure := zerr.Wrap(domain.ErrCollaboratorFailure, "registry lookup failed")
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, zerr.With(zerr.With(failure, "exit_code", exitErr.ExitCode()),
				"stderr", strings.TrimSpace(stderr.String()))
		}
		return 0, zerr.With(failure, "cause", err.Error())
	}

	out := strings.TrimSpace(stdout.String())
	latest, err := strconv.Atoi(out)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrCollaboratorFailure, "registry returned a non-numeric version"),
			"output", out)
	}

	r.logger.Debug("Latest package version: " + out)

	return latest, nil
}
