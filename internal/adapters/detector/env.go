// Package detector reads the runner switches from the process environment.
package detector

import (
	"os"

	"github.com/spf13/viper"
	"go.trai.ch/tasks/internal/core/domain"
	"golang.org/x/term"
)

// Keys under which the switches are bound.
const (
	keyDisableInteractive = "disable_interactive_input"
	keyGitLabCI           = "gitlab_ci"
	keyOverrideEnv        = "override_env"
	keyDebug              = "debug"
	keyDockerPassword     = "docker_password"
	keyRegistryCommand    = "registry_command"
)

// Detector turns environment variables into domain.RunFlags.
// Switches are presence based: an empty value still counts as set.
type Detector struct {
	v          *viper.Viper
	isTerminal func() bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithTerminalCheck replaces the stdin TTY probe.
func WithTerminalCheck(fn func() bool) Option {
	return func(d *Detector) {
		d.isTerminal = fn
	}
}

// New creates a Detector bound to the runner environment variables.
func New(opts ...Option) *Detector {
	v := viper.New()
	v.AllowEmptyEnv(true)

	bindings := map[string]string{
		keyDisableInteractive: domain.EnvDisableInteractiveInput,
		keyGitLabCI:           domain.EnvGitLabCI,
		keyOverrideEnv:        domain.EnvOverrideEnv,
		keyDebug:              domain.EnvDebug,
		keyDockerPassword:     domain.EnvDockerPassword,
		keyRegistryCommand:    domain.EnvRegistryCommand,
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}

	d := &Detector{
		v: v,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect reads the current environment.
func (d *Detector) Detect() domain.RunFlags {
	flags := domain.RunFlags{
		Interactive:       d.isTerminal() && !d.v.IsSet(keyDisableInteractive),
		CI:                d.v.IsSet(keyGitLabCI),
		Override:          domain.OverrideClobber,
		Debug:             d.v.IsSet(keyDebug),
		HasDockerPassword: d.v.IsSet(keyDockerPassword),
		DockerPassword:    d.v.GetString(keyDockerPassword),
		RegistryCommand:   d.v.GetString(keyRegistryCommand),
	}

	if d.v.IsSet(keyOverrideEnv) {
		flags.Override = domain.OverridePreserve
	}

	return flags
}
