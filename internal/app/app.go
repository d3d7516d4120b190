// Package app implements the application layer for tasks.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/tasks/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/console"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/migrate"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/registry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/tasks/internal/engine/namespace"
	"go.trai.ch/tasks/internal/engine/resolver"
	"go.trai.ch/tasks/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"sigs.k8s.io/yaml"
)

// Describe output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned when a describe format is neither json nor yaml.
var ErrUnknownFormat = zerr.New("unknown output format")

// App represents the main application logic.
type App struct {
	loader   ports.DefinitionLoader
	launcher ports.Launcher
	prompter ports.Prompter
	manifest ports.ManifestReader
	workdir  ports.WorkDir
	logger   ports.Logger
	migrator *migrate.Migrator
	detector *detector.Detector

	stdout   io.Writer
	environ  func() []string
	registry ports.PackageRegistry
	tracer   ports.Tracer
}

// Option configures an App.
type Option func(*App)

// WithOutput sets the writer used for banners and command output.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// WithEnviron replaces the source of the inherited environment.
func WithEnviron(fn func() []string) Option {
	return func(a *App) {
		a.environ = fn
	}
}

// WithRegistry replaces the package registry built for each run.
func WithRegistry(r ports.PackageRegistry) Option {
	return func(a *App) {
		a.registry = r
	}
}

// WithTracer replaces the console tracer built for each run.
func WithTracer(t ports.Tracer) Option {
	return func(a *App) {
		a.tracer = t
	}
}

// New creates a new App instance.
func New(
	loader ports.DefinitionLoader,
	launcher ports.Launcher,
	prompter ports.Prompter,
	manifest ports.ManifestReader,
	workdir ports.WorkDir,
	logger ports.Logger,
	migrator *migrate.Migrator,
	det *detector.Detector,
	opts ...Option,
) *App {
	a := &App{
		loader:   loader,
		launcher: launcher,
		prompter: prompter,
		manifest: manifest,
		workdir:  workdir,
		logger:   logger,
		migrator: migrator,
		detector: det,
		stdout:   os.Stdout,
		environ:  os.Environ,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunOptions configures a task run.
type RunOptions struct {
	// Root is the workspace directory holding .vscode.
	Root string
	// SettingsFile selects a settings file under .vscode. Empty means settings.json.
	SettingsFile string
	// Inputs are input values supplied on the command line, keyed by id.
	Inputs map[string]string
	// Debug enables verbose output in addition to TASKS_DEBUG.
	Debug bool
}

// Run executes the task with the given label and its dependencies.
func (a *App) Run(ctx context.Context, label string, opts RunOptions) error {
	flags := a.detector.Detect()
	debug := flags.Debug || opts.Debug
	if d, ok := a.logger.(interface{ SetDebug(bool) }); ok {
		d.SetDebug(debug)
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve workspace root")
	}

	tasks, err := a.loader.LoadTasks(domain.TasksPath(root))
	if err != nil {
		return zerr.Wrap(err, "failed to load tasks")
	}

	settings, err := a.loader.LoadSettings(domain.SettingsPath(root, opts.SettingsFile))
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	store := namespace.New(a.environ(), flags.Override)
	if flags.HasDockerPassword {
		store.Set(string(domain.SettingDockerPassword), flags.DockerPassword)
	}
	store.Seed(settings)

	folder, ok := store.LookupEnv(domain.EnvWorkspaceFolder)
	if !ok {
		folder = root
	}
	basename, ok := store.LookupEnv(domain.EnvWorkspaceFolderBasename)
	if !ok {
		basename = filepath.Base(folder)
	}

	reg := a.registry
	if reg == nil {
		reg = registry.New(root, flags.RegistryCommand, a.logger)
	}

	res := resolver.New(store, tasks, a.prompter, reg, a.manifest, a.logger, resolver.Options{
		WorkspaceFolder:   folder,
		WorkspaceBasename: basename,
		ManifestPath:      domain.ManifestPath(root),
		Interactive:       flags.Interactive,
	})
	if err := res.SetInputs(opts.Inputs); err != nil {
		return err
	}

	tracer := a.tracer
	if tracer == nil {
		renderer := console.NewRenderer(a.stdout, console.WithVerbose(debug))
		otel := telemetry.NewOTelTracer("tasks", telemetry.NewBridge(renderer))
		defer func() {
			_ = otel.Shutdown(context.WithoutCancel(ctx))
		}()
		tracer = otel
	}

	a.logger.Debug(fmt.Sprintf("running %s (ci=%t, interactive=%t, override=%s)",
		label, flags.CI, flags.Interactive, flags.Override))

	sched := scheduler.NewScheduler(tasks, res, store, a.launcher, a.workdir, tracer, a.logger,
		scheduler.Options{CI: flags.CI})
	return sched.Run(ctx, label)
}

// ListLabels returns the task labels in declaration order.
// Each line is prefixed with the task index unless noIndex is set.
// Hidden tasks are skipped unless showHidden is set, but keep their index.
func (a *App) ListLabels(root string, showHidden, noIndex bool) ([]string, error) {
	tasks, err := a.loader.LoadTasks(domain.TasksPath(root))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load tasks")
	}

	var lines []string
	for i, t := range tasks.Tasks() {
		if t.Hidden && !showHidden {
			continue
		}
		if noIndex {
			lines = append(lines, t.Label.String())
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. \t%s", i, t.Label.String()))
	}
	return lines, nil
}

// DescribeTask renders a task definition. ref is a label or, when no task
// carries that label, a declaration index.
func (a *App) DescribeTask(root, ref, format string) ([]byte, error) {
	tasks, err := a.loader.LoadTasks(domain.TasksPath(root))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load tasks")
	}

	task, ok := tasks.Task(ref)
	if !ok {
		if i, convErr := strconv.Atoi(ref); convErr == nil {
			task, ok = tasks.TaskAt(i)
		}
	}
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "cannot describe task"), "task", ref)
	}

	return encode(config.TaskToDTO(&task), format)
}

// DescribeInput renders an input definition.
func (a *App) DescribeInput(root, id, format string) ([]byte, error) {
	tasks, err := a.loader.LoadTasks(domain.TasksPath(root))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load tasks")
	}

	in, ok := tasks.Input(id)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownInput, "cannot describe input"), "id", id)
	}

	return encode(config.InputToDTO(&in), format)
}

// Migrate rewrites legacy input references in the workspace JSON files.
func (a *App) Migrate(ctx context.Context, root string, dryRun bool) ([]migrate.Result, error) {
	results, err := a.migrator.Migrate(ctx, root, dryRun)
	if err != nil {
		return nil, zerr.Wrap(err, "migration failed")
	}
	return results, nil
}

func encode(v any, format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		out, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode json")
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode yaml")
		}
		return out, nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnknownFormat, "cannot encode definition"), "format", format)
	}
}
