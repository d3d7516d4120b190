// Package namespace implements the config namespace shared by the resolver and the executor.
package namespace

import (
	"slices"
	"strings"

	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store holds the environment layer and the config layer.
// The environment layer starts as a copy of the invoking process environment
// and receives task overrides; the config layer holds settings.
// Both are materialized into child processes by Environ.
// A Store is not safe for concurrent use.
type Store struct {
	env    map[string]string
	config map[string]string
	policy domain.OverridePolicy
}

// New creates a Store from environ entries in KEY=VALUE form.
// Entries named config:<name> are imported into the config layer.
func New(environ []string, policy domain.OverridePolicy) *Store {
	s := &Store{
		env:    make(map[string]string, len(environ)),
		config: make(map[string]string),
		policy: policy,
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		if name, isConfig := strings.CutPrefix(k, domain.ConfigEnvPrefix); isConfig {
			s.config[domain.NormalizeKey(name)] = v
			continue
		}
		s.env[k] = v
	}
	return s
}

// Policy returns the override policy.
func (s *Store) Policy() domain.OverridePolicy {
	return s.policy
}

// Seed publishes every present setting and every extra entry.
// Under OverridePreserve, config entries imported from the environment win.
func (s *Store) Seed(settings *domain.Settings) {
	if settings == nil {
		return
	}
	for _, name := range domain.KnownSettings {
		if v, ok := settings.Values[name]; ok {
			s.seed(string(name), v)
		}
	}
	keys := make([]string, 0, len(settings.Extra))
	for k := range settings.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		s.seed(k, settings.Extra[k])
	}
}

func (s *Store) seed(name, value string) {
	name = domain.NormalizeKey(name)
	if _, exists := s.config[name]; exists && s.policy == domain.OverridePreserve {
		return
	}
	s.config[name] = value
}

// Get returns the config value for name, normalizing dots to underscores.
func (s *Store) Get(name string) (string, error) {
	key := domain.NormalizeKey(name)
	v, ok := s.config[key]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "cannot resolve config"), "name", name)
	}
	return v, nil
}

// Set publishes or overwrites a config value.
func (s *Store) Set(name, value string) {
	s.config[domain.NormalizeKey(name)] = value
}

// LookupEnv returns the environment variable name.
func (s *Store) LookupEnv(name string) (string, bool) {
	v, ok := s.env[name]
	return v, ok
}

// SetEnv sets an environment variable for subsequent lookups and child processes.
func (s *Store) SetEnv(name, value string) {
	s.env[name] = value
}

// ShouldApply reports whether a task override for key must be resolved and set.
func (s *Store) ShouldApply(key string) bool {
	if s.policy == domain.OverridePreserve {
		_, exists := s.env[key]
		return !exists
	}
	return true
}

// Environ materializes both layers as KEY=VALUE entries for a child process.
// Config entries are emitted as config:<name>=<value>. Output is sorted.
func (s *Store) Environ() []string {
	out := make([]string, 0, len(s.env)+len(s.config))
	for k, v := range s.env {
		out = append(out, k+"="+v)
	}
	for k, v := range s.config {
		out = append(out, domain.ConfigEnvPrefix+k+"="+v)
	}
	slices.Sort(out)
	return out
}

