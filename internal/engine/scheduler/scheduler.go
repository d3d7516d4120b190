// Package scheduler implements the dependency executor that runs tasks depth-first.
package scheduler

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/tasks/internal/engine/namespace"
	"go.trai.ch/tasks/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// TaskStatus represents the state of a task invocation.
type TaskStatus string

const (
	// StatusPendingDependencies indicates the task is running its dependencies.
	StatusPendingDependencies TaskStatus = "PendingDependencies"
	// StatusResolvingVariables indicates command, arguments and environment are being resolved.
	StatusResolvingVariables TaskStatus = "ResolvingVariables"
	// StatusEnvironmentApplied indicates overrides were applied to the environment.
	StatusEnvironmentApplied TaskStatus = "EnvironmentApplied"
	// StatusRunning indicates the child process is running.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task exited with status zero.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task or one of its dependencies failed.
	StatusFailed TaskStatus = "Failed"
)

// Span attribute keys.
const (
	AttrLabel    = "task.label"
	AttrKind     = "task.kind"
	AttrExitCode = "task.exit_code"
)

var dockerHostAssignment = regexp.MustCompile(`DOCKER_HOST=\S*`)

// Transition records one status change of a task invocation.
type Transition struct {
	Label  string
	Status TaskStatus
}

// Options configures a Scheduler.
type Options struct {
	// CI rewrites DOCKER_HOST assignments to the CI docker daemon.
	CI bool
}

// Scheduler runs tasks and their dependencies sequentially.
type Scheduler struct {
	tasks    *domain.TaskSet
	resolver *resolver.Resolver
	store    *namespace.Store
	launcher ports.Launcher
	workdir  ports.WorkDir
	tracer   ports.Tracer
	logger   ports.Logger
	opts     Options

	mu      sync.Mutex
	history []Transition
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	tasks *domain.TaskSet,
	res *resolver.Resolver,
	store *namespace.Store,
	launcher ports.Launcher,
	workdir ports.WorkDir,
	tracer ports.Tracer,
	logger ports.Logger,
	opts Options,
) *Scheduler {
	return &Scheduler{
		tasks:    tasks,
		resolver: res,
		store:    store,
		launcher: launcher,
		workdir:  workdir,
		tracer:   tracer,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes the task with the given label after all of its dependencies.
// Dependencies run depth-first in declaration order and are not deduplicated.
// The first failure aborts the whole chain.
func (s *Scheduler) Run(ctx context.Context, label string) error {
	return s.run(ctx, domain.NewInternedString(label), nil)
}

func (s *Scheduler) run(ctx context.Context, label domain.InternedString, path []domain.InternedString) error {
	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "run cancelled")
	}
	if slices.Contains(path, label) {
		return domain.CycleError(path, label)
	}

	task, ok := s.tasks.Task(label.String())
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "cannot run task"), "label", label.String())
	}

	stack := append(slices.Clone(path), label)
	s.transition(label, StatusPendingDependencies)
	for _, dep := range task.DependsOn {
		if err := s.run(ctx, dep, stack); err != nil {
			s.transition(label, StatusFailed)
			return err
		}
	}

	if err := s.execute(ctx, &task); err != nil {
		s.transition(label, StatusFailed)
		return err
	}
	s.transition(label, StatusCompleted)
	return nil
}

func (s *Scheduler) execute(ctx context.Context, task *domain.Task) (err error) {
	label := task.Label.String()
	exitCode := -1

	ctx, span := s.tracer.Start(ctx, label,
		ports.WithAttribute(AttrLabel, label),
		ports.WithAttribute(AttrKind, string(task.Kind)),
	)
	defer func() {
		span.SetAttribute(AttrExitCode, exitCode)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	s.transition(task.Label, StatusResolvingVariables)
	cmdLine, err := s.resolveCommandLine(ctx, task)
	if err != nil {
		return err
	}
	if err := s.applyEnvironment(ctx, task); err != nil {
		return err
	}
	s.transition(task.Label, StatusEnvironmentApplied)

	if task.HasWorkingDir() {
		restore, err := s.enterWorkingDir(ctx, task)
		if err != nil {
			return err
		}
		defer restore()
	}

	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "run cancelled")
	}

	s.transition(task.Label, StatusRunning)
	s.logger.Debug("launching " + label + ": " + cmdLine.String())
	exitCode, err = s.launcher.Launch(ctx, cmdLine, s.store.Environ())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to launch task"), "label", label)
	}
	if exitCode != 0 {
		failure := zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, "task exited with error"), "label", label)
		return zerr.With(failure, "exit_code", exitCode)
	}
	return nil
}

// resolveCommandLine resolves command and arguments and assembles the final invocation.
func (s *Scheduler) resolveCommandLine(ctx context.Context, task *domain.Task) (domain.CommandLine, error) {
	label := task.Label.String()

	cmd, err := s.resolver.Resolve(ctx, task.Command)
	if err != nil {
		return domain.CommandLine{}, zerr.With(err, "label", label)
	}
	args, err := s.resolver.ResolveAll(ctx, task.Args)
	if err != nil {
		return domain.CommandLine{}, zerr.With(err, "label", label)
	}

	if task.Kind == domain.TaskKindProcess {
		return domain.CommandLine{Program: cmd, Args: args}, nil
	}

	if s.opts.CI {
		cmd = dockerHostAssignment.ReplaceAllLiteralString(cmd, "DOCKER_HOST="+domain.CIDockerHost)
	}

	script := cmd
	if quoted := resolver.QuoteArgs(args); len(quoted) > 0 {
		script += " " + strings.Join(quoted, " ")
	}
	if task.IsBackground {
		script += " &"
	}

	cl := domain.CommandLine{Shell: true, Script: script}
	if task.Shell != nil {
		cl.ShellExecutable = task.Shell.Executable
		cl.ShellArgs = task.Shell.Args
	}
	return cl, nil
}

// applyEnvironment resolves and sets task overrides in sorted key order.
func (s *Scheduler) applyEnvironment(ctx context.Context, task *domain.Task) error {
	keys := make([]string, 0, len(task.Env))
	for k := range task.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if !s.store.ShouldApply(k) {
			s.logger.Debug("keeping existing " + k)
			continue
		}
		v, err := s.resolver.ResolveEnvValue(ctx, k, task.Env[k])
		if err != nil {
			return zerr.With(err, "label", task.Label.String())
		}
		s.store.SetEnv(k, v)
	}
	return nil
}

// enterWorkingDir changes into the task working directory and returns the restore function.
func (s *Scheduler) enterWorkingDir(ctx context.Context, task *domain.Task) (func(), error) {
	label := task.Label.String()

	dir, err := s.resolver.Resolve(ctx, task.WorkingDir)
	if err != nil {
		return nil, zerr.With(err, "label", label)
	}
	dir, err = homedir.Expand(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrWorkingDirChange, err.Error()), "dir", dir)
	}

	prev, err := s.workdir.Getwd()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrWorkingDirChange, err.Error()), "label", label)
	}
	if err := s.workdir.Chdir(dir); err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrWorkingDirChange, err.Error()), "label", label), "dir", dir)
	}

	return func() {
		if err := s.workdir.Chdir(prev); err != nil {
			s.logger.Error(zerr.With(zerr.Wrap(err, "failed to restore working directory"), "dir", prev))
		}
	}, nil
}

func (s *Scheduler) transition(label domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	s.history = append(s.history, Transition{Label: label.String(), Status: status})
	s.mu.Unlock()
	s.logger.Debug(label.String() + ": " + string(status))
}
