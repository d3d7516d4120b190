package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/tasks/internal/core/ports/mocks"
	"go.trai.ch/tasks/internal/engine/namespace"
	"go.trai.ch/tasks/internal/engine/resolver"
	"go.trai.ch/tasks/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type schedulerMocks struct {
	launcher *mocks.MockLauncher
	workdir  *mocks.MockWorkDir
	store    *namespace.Store
}

func shellTask(label string, deps ...string) domain.Task {
	return domain.Task{
		Label:     domain.NewInternedString(label),
		Kind:      domain.TaskKindShell,
		Command:   "echo " + label,
		DependsOn: domain.NewInternedStrings(deps),
	}
}

func setupScheduler(
	t *testing.T,
	environ []string,
	policy domain.OverridePolicy,
	opts scheduler.Options,
	tasks ...domain.Task,
) (*scheduler.Scheduler, *schedulerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	set := domain.NewTaskSet()
	for i := range tasks {
		require.NoError(t, set.AddTask(&tasks[i]))
	}

	settings := domain.NewSettings()
	settings.Values[domain.SettingTorizonIP] = "10.0.0.2"
	store := namespace.New(environ, policy)
	store.Seed(settings)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	res := resolver.New(store, set, mocks.NewMockPrompter(ctrl), mocks.NewMockPackageRegistry(ctrl),
		mocks.NewMockManifestReader(ctrl), logger, resolver.Options{WorkspaceFolder: "/work"})

	m := &schedulerMocks{
		launcher: mocks.NewMockLauncher(ctrl),
		workdir:  mocks.NewMockWorkDir(ctrl),
		store:    store,
	}
	s := scheduler.NewScheduler(set, res, store, m.launcher, m.workdir, tracer, logger, opts)
	return s, m
}

// recordScripts makes the launcher succeed and collects every launched command line.
func recordScripts(m *schedulerMocks, got *[]string) {
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.CommandLine, _ []string) (int, error) {
			*got = append(*got, cmd.String())
			return 0, nil
		}).AnyTimes()
}

func TestScheduler_TaskNotFound(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, shellTask("build"))
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := s.Run(context.Background(), "deploy")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "deploy", zErr.Metadata()["label"])
}

func TestScheduler_MissingDependency(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, shellTask("build", "ghost"))
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.ErrorIs(t, s.Run(context.Background(), "build"), domain.ErrTaskNotFound)
}

func TestScheduler_DependencyOrder(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{},
		shellTask("deploy", "A", "B"),
		shellTask("A", "A1"),
		shellTask("A1"),
		shellTask("B"),
	)
	var got []string
	recordScripts(m, &got)

	require.NoError(t, s.Run(context.Background(), "deploy"))
	assert.Equal(t, []string{"echo A1", "echo A", "echo B", "echo deploy"}, got)
}

func TestScheduler_NoDeduplication(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{},
		shellTask("all", "left", "right"),
		shellTask("left", "shared"),
		shellTask("right", "shared"),
		shellTask("shared"),
	)
	var got []string
	recordScripts(m, &got)

	require.NoError(t, s.Run(context.Background(), "all"))
	assert.Equal(t, []string{"echo shared", "echo left", "echo shared", "echo right", "echo all"}, got)
}

func TestScheduler_FailurePropagation(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{},
		shellTask("deploy", "A", "B"),
		shellTask("A"),
		shellTask("B"),
	)

	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.CommandLine, _ []string) (int, error) {
			require.Equal(t, "echo A", cmd.Script, "only A may launch")
			return 2, nil
		}).Times(1)

	err := s.Run(context.Background(), "deploy")
	require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "A", zErr.Metadata()["label"])
	assert.Equal(t, 2, zErr.Metadata()["exit_code"])

	transitions := s.GetTransitions()
	assert.Equal(t, scheduler.Transition{Label: "deploy", Status: scheduler.StatusFailed}, transitions[len(transitions)-1])
	for _, tr := range transitions {
		assert.NotEqual(t, "B", tr.Label, "B must not start after A failed")
	}
}

func TestScheduler_Cycle(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []domain.Task
		wantCycle string
	}{
		{
			name:      "self",
			tasks:     []domain.Task{shellTask("A", "A")},
			wantCycle: "A -> A",
		},
		{
			name:      "three nodes",
			tasks:     []domain.Task{shellTask("A", "B"), shellTask("B", "C"), shellTask("C", "A")},
			wantCycle: "A -> B -> C -> A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, tt.tasks...)
			m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			err := s.Run(context.Background(), "A")
			require.ErrorIs(t, err, domain.ErrDependencyCycle)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok)
			assert.Equal(t, tt.wantCycle, zErr.Metadata()["cycle"])
		})
	}
}

func TestScheduler_CommandLineAssembly(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		ci   bool
		want domain.CommandLine
	}{
		{
			name: "shell with quoted args",
			task: domain.Task{
				Label:   domain.NewInternedString("t"),
				Kind:    domain.TaskKindShell,
				Command: "ssh",
				Args:    []string{"root@${config:torizon_ip}", "hello world", "my:value", "plain123"},
			},
			want: domain.CommandLine{Shell: true, Script: "ssh 'root@10.0.0.2' 'hello world' 'my:value' plain123"},
		},
		{
			name: "background shell",
			task: domain.Task{
				Label:        domain.NewInternedString("t"),
				Kind:         domain.TaskKindShell,
				Command:      "sleep",
				Args:         []string{"5"},
				IsBackground: true,
			},
			want: domain.CommandLine{Shell: true, Script: "sleep 5 &"},
		},
		{
			name: "custom shell",
			task: domain.Task{
				Label:   domain.NewInternedString("t"),
				Kind:    domain.TaskKindShell,
				Command: "Write-Host hi",
				Shell:   &domain.ShellConfig{Executable: "pwsh", Args: []string{"-NoProfile", "-Command"}},
			},
			want: domain.CommandLine{Shell: true, Script: "Write-Host hi", ShellExecutable: "pwsh", ShellArgs: []string{"-NoProfile", "-Command"}},
		},
		{
			name: "process keeps argv unquoted",
			task: domain.Task{
				Label:        domain.NewInternedString("t"),
				Kind:         domain.TaskKindProcess,
				Command:      "${workspaceFolder}/bin/tool",
				Args:         []string{"hello world", "my:value"},
				IsBackground: true,
			},
			want: domain.CommandLine{Program: "/work/bin/tool", Args: []string{"hello world", "my:value"}},
		},
		{
			name: "ci rewrites docker host",
			task: domain.Task{
				Label:   domain.NewInternedString("t"),
				Kind:    domain.TaskKindShell,
				Command: "DOCKER_HOST=unix:///var/run/docker.sock docker compose up",
			},
			ci:   true,
			want: domain.CommandLine{Shell: true, Script: "DOCKER_HOST=tcp://docker:2375 docker compose up"},
		},
		{
			name: "docker host untouched outside ci",
			task: domain.Task{
				Label:   domain.NewInternedString("t"),
				Kind:    domain.TaskKindShell,
				Command: "DOCKER_HOST= docker ps",
			},
			want: domain.CommandLine{Shell: true, Script: "DOCKER_HOST= docker ps"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{CI: tt.ci}, tt.task)
			m.launcher.EXPECT().Launch(gomock.Any(), tt.want, gomock.Any()).Return(0, nil)

			require.NoError(t, s.Run(context.Background(), "t"))
		})
	}
}

func TestScheduler_EnvironmentOverrides(t *testing.T) {
	task := domain.Task{
		Label:   domain.NewInternedString("t"),
		Kind:    domain.TaskKindShell,
		Command: "env",
		Env: map[string]string{
			"DOCKER_HOST": "tcp://${config:torizon_ip}:2375",
			"APP_MODE":    "debug",
		},
	}
	environ := []string{"DOCKER_HOST=unix:///var/run/docker.sock"}

	tests := []struct {
		name       string
		policy     domain.OverridePolicy
		wantDocker string
	}{
		{name: "clobber", policy: domain.OverrideClobber, wantDocker: "DOCKER_HOST=tcp://10.0.0.2:2375"},
		{name: "preserve", policy: domain.OverridePreserve, wantDocker: "DOCKER_HOST=unix:///var/run/docker.sock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupScheduler(t, environ, tt.policy, scheduler.Options{}, task)

			var env []string
			m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.CommandLine, e []string) (int, error) {
					env = e
					return 0, nil
				})

			require.NoError(t, s.Run(context.Background(), "t"))
			assert.Contains(t, env, tt.wantDocker)
			assert.Contains(t, env, "APP_MODE=debug")
			assert.Contains(t, env, "config:torizon_ip=10.0.0.2")
		})
	}
}

func TestScheduler_EnvironmentResolutionFailure(t *testing.T) {
	task := domain.Task{
		Label:   domain.NewInternedString("t"),
		Kind:    domain.TaskKindShell,
		Command: "env",
		Env:     map[string]string{"USER_NAME": "${config:torizon_login}"},
	}
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, task)
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.ErrorIs(t, s.Run(context.Background(), "t"), domain.ErrConfigNotFound)
}

func TestScheduler_WorkingDirRestoredOnFailure(t *testing.T) {
	task := shellTask("t")
	task.WorkingDir = "/tmp/x"
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, task)

	gomock.InOrder(
		m.workdir.EXPECT().Getwd().Return("/home/dev/project", nil),
		m.workdir.EXPECT().Chdir("/tmp/x").Return(nil),
		m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil),
		m.workdir.EXPECT().Chdir("/home/dev/project").Return(nil),
	)

	require.ErrorIs(t, s.Run(context.Background(), "t"), domain.ErrTaskExecutionFailed)
}

func TestScheduler_WorkingDirRestoredOnLaunchError(t *testing.T) {
	task := shellTask("t")
	task.WorkingDir = "${workspaceFolder}/src"
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, task)

	boom := errors.New("exec format error")
	gomock.InOrder(
		m.workdir.EXPECT().Getwd().Return("/home/dev", nil),
		m.workdir.EXPECT().Chdir("/work/src").Return(nil),
		m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return(-1, boom),
		m.workdir.EXPECT().Chdir("/home/dev").Return(nil),
	)

	require.ErrorIs(t, s.Run(context.Background(), "t"), boom)
}

func TestScheduler_ChdirFailureIsFatal(t *testing.T) {
	task := shellTask("t")
	task.WorkingDir = "/does/not/exist"
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, task)

	m.workdir.EXPECT().Getwd().Return("/home/dev", nil)
	m.workdir.EXPECT().Chdir("/does/not/exist").Return(errors.New("no such file or directory"))
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.ErrorIs(t, s.Run(context.Background(), "t"), domain.ErrWorkingDirChange)
}

func TestScheduler_ResolutionFailureSkipsLaunch(t *testing.T) {
	task := shellTask("t")
	task.Command = "ssh ${config:torizon_login}@host"
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, task)
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.ErrorIs(t, s.Run(context.Background(), "t"), domain.ErrConfigNotFound)
}

func TestScheduler_Transitions(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, shellTask("a", "b"), shellTask("b"))
	var got []string
	recordScripts(m, &got)

	require.NoError(t, s.Run(context.Background(), "a"))

	assert.Equal(t, []scheduler.Transition{
		{Label: "a", Status: scheduler.StatusPendingDependencies},
		{Label: "b", Status: scheduler.StatusPendingDependencies},
		{Label: "b", Status: scheduler.StatusResolvingVariables},
		{Label: "b", Status: scheduler.StatusEnvironmentApplied},
		{Label: "b", Status: scheduler.StatusRunning},
		{Label: "b", Status: scheduler.StatusCompleted},
		{Label: "a", Status: scheduler.StatusResolvingVariables},
		{Label: "a", Status: scheduler.StatusEnvironmentApplied},
		{Label: "a", Status: scheduler.StatusRunning},
		{Label: "a", Status: scheduler.StatusCompleted},
	}, s.GetTransitions())
}

func TestScheduler_Cancelled(t *testing.T) {
	s, m := setupScheduler(t, nil, domain.OverrideClobber, scheduler.Options{}, shellTask("a"))
	m.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Run(ctx, "a"), context.Canceled)
}
