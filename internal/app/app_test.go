package app_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasks/internal/adapters/detector"
	"go.trai.ch/tasks/internal/adapters/fs"
	"go.trai.ch/tasks/internal/adapters/migrate"
	"go.trai.ch/tasks/internal/adapters/telemetry"
	"go.trai.ch/tasks/internal/app"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockDefinitionLoader
	launcher *mocks.MockLauncher
	prompter *mocks.MockPrompter
	manifest *mocks.MockManifestReader
	workdir  *mocks.MockWorkDir
	registry *mocks.MockPackageRegistry
	logger   *mocks.MockLogger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	for _, key := range []string{
		domain.EnvGitLabCI, domain.EnvOverrideEnv, domain.EnvDebug,
		domain.EnvDockerPassword, domain.EnvRegistryCommand,
	} {
		unsetEnv(t, key)
	}
	t.Setenv(domain.EnvDisableInteractiveInput, "1")

	ctrl := gomock.NewController(t)
	f := fixture{
		loader:   mocks.NewMockDefinitionLoader(ctrl),
		launcher: mocks.NewMockLauncher(ctrl),
		prompter: mocks.NewMockPrompter(ctrl),
		manifest: mocks.NewMockManifestReader(ctrl),
		workdir:  mocks.NewMockWorkDir(ctrl),
		registry: mocks.NewMockPackageRegistry(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return f
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func (f fixture) app(environ []string) *app.App {
	return app.New(
		f.loader,
		f.launcher,
		f.prompter,
		f.manifest,
		f.workdir,
		f.logger,
		migrate.New(fs.NewWalker(), fs.NewHasher(), f.logger),
		detector.New(detector.WithTerminalCheck(func() bool { return false })),
		app.WithEnviron(func() []string { return environ }),
		app.WithRegistry(f.registry),
		app.WithTracer(telemetry.NewNoOpTracer()),
	)
}

func sampleTasks(t *testing.T) *domain.TaskSet {
	t.Helper()
	tasks := domain.NewTaskSet()
	for _, task := range []domain.Task{
		{
			Label:   domain.NewInternedString("build"),
			Kind:    domain.TaskKindShell,
			Command: "make",
			Args:    []string{"${input:target}", "${config:torizon_arch}"},
		},
		{
			Label:   domain.NewInternedString("secret"),
			Kind:    domain.TaskKindProcess,
			Command: "true",
			Hidden:  true,
		},
		{
			Label:      domain.NewInternedString("deploy"),
			Kind:       domain.TaskKindShell,
			Command:    "./deploy.sh",
			WorkingDir: "${workspaceFolder}/sub",
			Env:        map[string]string{"TARGET": "${config:torizon_ip}"},
			DependsOn:  []domain.InternedString{domain.NewInternedString("build")},
			Icon:       &domain.Icon{ID: "rocket"},
		},
		{
			Label:   domain.NewInternedString("1"),
			Kind:    domain.TaskKindShell,
			Command: "echo one",
		},
	} {
		require.NoError(t, tasks.AddTask(&task))
	}
	require.NoError(t, tasks.AddInput(&domain.Input{
		ID:          "target",
		Description: "Make target",
		Kind:        domain.InputKindPromptString,
		Default:     "all",
	}))
	return tasks
}

func sampleSettings() *domain.Settings {
	s := domain.NewSettings()
	s.Values[domain.SettingTorizonArch] = "arm64"
	s.Values[domain.SettingTorizonIP] = "10.0.0.2"
	return s
}

func TestApp_ListLabels(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadTasks(domain.TasksPath("/ws")).Return(sampleTasks(t), nil).Times(3)
	a := f.app(nil)

	lines, err := a.ListLabels("/ws", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"0. \tbuild", "2. \tdeploy", "3. \t1"}, lines)

	lines, err = a.ListLabels("/ws", true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"0. \tbuild", "1. \tsecret", "2. \tdeploy", "3. \t1"}, lines)

	lines, err = a.ListLabels("/ws", true, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "secret", "deploy", "1"}, lines)
}

func TestApp_DescribeTask(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadTasks(gomock.Any()).Return(sampleTasks(t), nil).AnyTimes()
	a := f.app(nil)

	t.Run("by label", func(t *testing.T) {
		out, err := a.DescribeTask("/ws", "deploy", app.FormatJSON)
		require.NoError(t, err)
		goldie.New(t).Assert(t, "describe_task_deploy", out)
	})

	t.Run("by index", func(t *testing.T) {
		out, err := a.DescribeTask("/ws", "1", app.FormatYAML)
		require.NoError(t, err)
		// A task labelled "1" wins over the task at index 1.
		assert.Equal(t, "command: echo one\nlabel: \"1\"\ntype: shell\n", string(out))

		out, err = a.DescribeTask("/ws", "0", app.FormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(out), "label: build\n")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := a.DescribeTask("/ws", "42", app.FormatJSON)
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := a.DescribeTask("/ws", "build", "toml")
		require.ErrorIs(t, err, app.ErrUnknownFormat)
	})
}

func TestApp_DescribeInput(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadTasks(gomock.Any()).Return(sampleTasks(t), nil).Times(2)
	a := f.app(nil)

	out, err := a.DescribeInput("/ws", "target", app.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"target","description":"Make target","default":"all","type":"promptString"}`, string(out))

	_, err = a.DescribeInput("/ws", "missing", app.FormatJSON)
	require.ErrorIs(t, err, domain.ErrUnknownInput)
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	t.Setenv(domain.EnvDockerPassword, "s3cret")

	root := t.TempDir()
	f.loader.EXPECT().LoadTasks(domain.TasksPath(root)).Return(sampleTasks(t), nil)
	f.loader.EXPECT().LoadSettings(domain.SettingsPath(root, "ci.json")).Return(sampleSettings(), nil)

	var envs [][]string
	gomock.InOrder(
		f.launcher.EXPECT().
			Launch(gomock.Any(), domain.CommandLine{Shell: true, Script: "make release arm64"}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.CommandLine, env []string) (int, error) {
				envs = append(envs, env)
				return 0, nil
			}),
		f.workdir.EXPECT().Getwd().Return("/orig", nil),
		f.workdir.EXPECT().Chdir("/ws/sub").Return(nil),
		f.launcher.EXPECT().
			Launch(gomock.Any(), domain.CommandLine{Shell: true, Script: "./deploy.sh"}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.CommandLine, env []string) (int, error) {
				envs = append(envs, env)
				return 0, nil
			}),
		f.workdir.EXPECT().Chdir("/orig").Return(nil),
	)

	a := f.app([]string{"PATH=/bin", "workspaceFolder=/ws"})
	err := a.Run(context.Background(), "deploy", app.RunOptions{
		Root:         root,
		SettingsFile: "ci.json",
		Inputs:       map[string]string{"target": "release"},
	})
	require.NoError(t, err)

	require.Len(t, envs, 2)
	assert.True(t, slices.Contains(envs[0], "config:torizon_arch=arm64"))
	assert.True(t, slices.Contains(envs[0], "config:docker_password=s3cret"))
	assert.False(t, slices.Contains(envs[0], "TARGET=10.0.0.2"))
	assert.True(t, slices.Contains(envs[1], "TARGET=10.0.0.2"))
}

func TestApp_Run_Failure(t *testing.T) {
	f := newFixture(t)
	root := t.TempDir()
	f.loader.EXPECT().LoadTasks(gomock.Any()).Return(sampleTasks(t), nil)
	f.loader.EXPECT().LoadSettings(gomock.Any()).Return(sampleSettings(), nil)
	f.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return(2, nil)

	err := f.app(nil).Run(context.Background(), "deploy", app.RunOptions{Root: root})
	require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
}

func TestApp_Run_UnknownInput(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadTasks(gomock.Any()).Return(sampleTasks(t), nil)
	f.loader.EXPECT().LoadSettings(gomock.Any()).Return(sampleSettings(), nil)

	err := f.app(nil).Run(context.Background(), "build", app.RunOptions{
		Root:   t.TempDir(),
		Inputs: map[string]string{"nope": "1"},
	})
	require.ErrorIs(t, err, domain.ErrUnknownInput)
}

func TestApp_Run_WorkspaceDefaultsToRoot(t *testing.T) {
	f := newFixture(t)
	root := t.TempDir()

	tasks := domain.NewTaskSet()
	require.NoError(t, tasks.AddTask(&domain.Task{
		Label:   domain.NewInternedString("where"),
		Kind:    domain.TaskKindProcess,
		Command: "echo",
		Args:    []string{"${workspaceFolder}", "${workspaceFolderBasename}"},
	}))
	f.loader.EXPECT().LoadTasks(gomock.Any()).Return(tasks, nil)
	f.loader.EXPECT().LoadSettings(gomock.Any()).Return(domain.NewSettings(), nil)
	f.launcher.EXPECT().
		Launch(gomock.Any(), domain.CommandLine{Program: "echo", Args: []string{root, filepath.Base(root)}}, gomock.Any()).
		Return(0, nil)

	require.NoError(t, f.app(nil).Run(context.Background(), "where", app.RunOptions{Root: root}))
}

func TestApp_Run_LoadError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadTasks(gomock.Any()).Return(nil, domain.ErrDefinitionLoad)

	err := f.app(nil).Run(context.Background(), "build", app.RunOptions{Root: t.TempDir()})
	require.ErrorIs(t, err, domain.ErrDefinitionLoad)
}

func TestApp_Migrate(t *testing.T) {
	f := newFixture(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".vscode"), 0o750))
	path := filepath.Join(root, ".vscode", "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"args": ["${input:dockerLogin}"]}`), 0o600))

	results, err := f.app(nil).Migrate(context.Background(), root, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"args": ["${command:docker_login}"]}`, string(data))
}
