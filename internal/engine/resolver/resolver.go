// Package resolver implements the variable substitution pipeline applied to task strings.
package resolver

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/tasks/internal/engine/namespace"
	"go.trai.ch/zerr"
)

const (
	torizonPrefix = "torizon_"
	dockerPrefix  = "docker_"
	tcbPrefix     = "tcb."

	tcbNextPackageVersion = "tcb.getNextPackageVersion"
	tcbOutputTEZIFolder   = "tcb.outputTEZIFolder"
)

// Options configures a Resolver.
type Options struct {
	// WorkspaceFolder substitutes ${workspaceFolder}.
	WorkspaceFolder string
	// WorkspaceBasename substitutes ${workspaceFolderBasename}.
	WorkspaceBasename string
	// ManifestPath is the build manifest read for tcb.outputTEZIFolder.
	ManifestPath string
	// Interactive allows prompting for inputs without a CLI value or default.
	Interactive bool
}

// Resolver rewrites substitution references in task strings.
type Resolver struct {
	store     *namespace.Store
	tasks     *domain.TaskSet
	prompter  ports.Prompter
	registry  ports.PackageRegistry
	manifest  ports.ManifestReader
	logger    ports.Logger
	cliInputs map[string]string
	opts      Options
	passes    []pass
}

// pass rewrites the references of one namespace group.
// handled is false for references the pass does not own, which are kept verbatim.
type pass struct {
	name    string
	resolve func(ctx context.Context, ref domain.Reference, memo map[string]string) (value string, handled bool, err error)
}

// New creates a new Resolver.
func New(
	store *namespace.Store,
	tasks *domain.TaskSet,
	prompter ports.Prompter,
	registry ports.PackageRegistry,
	manifest ports.ManifestReader,
	logger ports.Logger,
	opts Options,
) *Resolver {
	r := &Resolver{
		store:     store,
		tasks:     tasks,
		prompter:  prompter,
		registry:  registry,
		manifest:  manifest,
		logger:    logger,
		cliInputs: make(map[string]string),
		opts:      opts,
	}
	r.passes = []pass{
		{name: "workspace", resolve: r.resolveWorkspace},
		{name: "command:torizon", resolve: r.deferToConfig(torizonPrefix)},
		{name: "command:docker", resolve: r.deferToConfig(dockerPrefix)},
		{name: "command:tcb", resolve: r.resolveTCB},
		{name: "input", resolve: r.resolveInput},
		{name: "env", resolve: r.resolveEnv},
		{name: "config", resolve: r.resolveConfig},
	}
	return r
}

// SetInputs registers values supplied on the command line.
// Every id must name a declared input.
func (r *Resolver) SetInputs(values map[string]string) error {
	for id := range values {
		if _, ok := r.tasks.Input(id); !ok {
			return zerr.With(zerr.Wrap(domain.ErrUnknownInput, "invalid cli input"), "id", id)
		}
	}
	for id, v := range values {
		r.cliInputs[id] = v
	}
	return nil
}

// Resolve runs the full pipeline over s.
func (r *Resolver) Resolve(ctx context.Context, s string) (string, error) {
	out, err := r.ResolveAll(ctx, []string{s})
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// ResolveAll runs the pipeline over values, pass by pass, each element independently.
func (r *Resolver) ResolveAll(ctx context.Context, values []string) ([]string, error) {
	out := make([]string, len(values))
	copy(out, values)

	for _, p := range r.passes {
		for i, v := range out {
			resolved, err := r.apply(ctx, p, v)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
	}
	return out, nil
}

// ResolveEnvValue resolves a task environment override value and traces it in debug mode.
func (r *Resolver) ResolveEnvValue(ctx context.Context, key, raw string) (string, error) {
	v, err := r.Resolve(ctx, raw)
	if err != nil {
		return "", zerr.With(err, "env", key)
	}
	r.logger.Debug("Env: " + key + "=" + raw)
	r.logger.Debug("Parsed Env: " + key + "=" + v)
	return v, nil
}

func (r *Resolver) apply(ctx context.Context, p pass, s string) (string, error) {
	segs := domain.Tokenize(s)
	memo := make(map[string]string)

	var b strings.Builder
	b.Grow(len(s))
	for _, seg := range segs {
		if !seg.IsRef {
			b.WriteString(seg.Raw)
			continue
		}
		v, handled, err := p.resolve(ctx, seg.Ref, memo)
		if err != nil {
			return "", err
		}
		if !handled {
			b.WriteString(seg.Raw)
			continue
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

func (r *Resolver) resolveWorkspace(_ context.Context, ref domain.Reference, _ map[string]string) (string, bool, error) {
	switch ref.Namespace {
	case domain.NamespaceWorkspaceFolder:
		return r.opts.WorkspaceFolder, true, nil
	case domain.NamespaceWorkspaceFolderBasename:
		return r.opts.WorkspaceBasename, true, nil
	default:
		return "", false, nil
	}
}

// deferToConfig rewrites ${command:<prefix>X} into ${config:<prefix>X} for the final config pass.
func (r *Resolver) deferToConfig(prefix string) func(context.Context, domain.Reference, map[string]string) (string, bool, error) {
	return func(_ context.Context, ref domain.Reference, _ map[string]string) (string, bool, error) {
		if ref.Namespace != domain.NamespaceCommand || !strings.HasPrefix(ref.Key, prefix) {
			return "", false, nil
		}
		return domain.Reference{Namespace: domain.NamespaceConfig, Key: ref.Key}.String(), true, nil
	}
}

func (r *Resolver) resolveTCB(ctx context.Context, ref domain.Reference, _ map[string]string) (string, bool, error) {
	if ref.Namespace != domain.NamespaceCommand || !strings.HasPrefix(ref.Key, tcbPrefix) {
		return "", false, nil
	}

	switch ref.Key {
	case tcbNextPackageVersion:
		name, err := r.store.Get(string(domain.SettingTCBPackageName))
		if err != nil {
			return "", false, err
		}
		latest, err := r.registry.LatestVersion(ctx, name)
		if err != nil {
			return "", false, zerr.With(zerr.Wrap(err, "cannot resolve "+ref.String()), "reference", ref.String())
		}
		return strconv.Itoa(latest + 1), true, nil
	case tcbOutputTEZIFolder:
		folder, err := r.manifest.OutputFolder(r.opts.ManifestPath)
		if err != nil {
			return "", false, zerr.With(zerr.Wrap(err, "cannot resolve "+ref.String()), "reference", ref.String())
		}
		return folder, true, nil
	default:
		return domain.Reference{Namespace: domain.NamespaceConfig, Key: ref.Key}.String(), true, nil
	}
}

func (r *Resolver) resolveEnv(_ context.Context, ref domain.Reference, _ map[string]string) (string, bool, error) {
	if ref.Namespace != domain.NamespaceEnv {
		return "", false, nil
	}
	v, ok := r.store.LookupEnv(ref.Key)
	if !ok {
		return "", false, zerr.With(zerr.Wrap(domain.ErrMissingEnvironmentVariable, "cannot resolve env"), "name", ref.Key)
	}
	return v, true, nil
}

func (r *Resolver) resolveConfig(_ context.Context, ref domain.Reference, _ map[string]string) (string, bool, error) {
	if ref.Namespace != domain.NamespaceConfig {
		return "", false, nil
	}
	v, err := r.store.Get(ref.Key)
	if err != nil {
		return "", false, err
	}
	if domain.NormalizeKey(ref.Key) == string(domain.SettingDockerRegistry) && v == "" {
		v = domain.DefaultDockerRegistry
		r.store.Set(ref.Key, v)
	}
	return v, true, nil
}
