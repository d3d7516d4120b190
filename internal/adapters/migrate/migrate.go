// Package migrate rewrites legacy input references in workspace JSON files.
package migrate

import (
	"bytes"
	"context"
	"strconv"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/tasks/internal/adapters/fs"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Legacy input references and the command references replacing them.
var replacements = strings.NewReplacer(
	"input:dockerLogin", "command:docker_login",
	"input:dockerImageRegistry", "command:docker_registry",
	"input:dockerPsswd", "command:docker_password",
)

// ignored entries are never rewritten.
var ignored = []string{"node_modules", "id_rsa*"}

// Result describes one visited file.
type Result struct {
	Path    string
	Changed bool
	// Hash is the xxhash of the content after migration. In dry-run mode it
	// is the hash of the content that would be written.
	Hash uint64
	// Diff is the unified diff of the rewrite, filled in dry-run mode.
	Diff string
}

// Migrator walks a workspace and rewrites legacy references.
type Migrator struct {
	walker *fs.Walker
	hasher *fs.Hasher
	logger ports.Logger
	limit  int
}

// New creates a new Migrator.
func New(walker *fs.Walker, hasher *fs.Hasher, logger ports.Logger) *Migrator {
	return &Migrator{
		walker: walker,
		hasher: hasher,
		logger: logger,
		limit:  runtime.NumCPU(),
	}
}

// Migrate rewrites every *.json file under root. With dryRun set, files are
// left untouched and each result carries the diff that would be applied.
// Results are sorted by path.
func (m *Migrator) Migrate(ctx context.Context, root string, dryRun bool) ([]Result, error) {
	var paths []string
	for path := range m.walker.WalkFiles(root, "*.json", ignored) {
		if strings.Contains(path, "id_rsa") {
			continue
		}
		paths = append(paths, path)
	}

	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := m.migrateFile(root, path, dryRun)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Path < results[b].Path })
	return results, nil
}

func (m *Migrator) migrateFile(root, path string, dryRun bool) (Result, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	res := Result{Path: filepath.ToSlash(rel)}

	info, err := os.Stat(path)
	if err != nil {
		return res, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}

	before, err := os.ReadFile(path) //nolint:gosec // path comes from walking the workspace
	if err != nil {
		return res, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}

	after := []byte(replacements.Replace(string(before)))
	res.Hash = m.hasher.ComputeHash(after)
	if bytes.Equal(before, after) {
		return res, nil
	}
	res.Changed = true

	if dryRun {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(before)),
			B:        difflib.SplitLines(string(after)),
			FromFile: "a/" + res.Path,
			ToFile:   "b/" + res.Path,
			Context:  1,
		})
		if err != nil {
			return res, zerr.With(zerr.Wrap(err, "failed to diff file"), "path", path)
		}
		res.Diff = diff
		return res, nil
	}

	if err := os.WriteFile(path, after, info.Mode().Perm()); err != nil {
		return res, zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}

	written, err := m.hasher.ComputeFileHash(path)
	if err != nil {
		return res, err
	}
	if written != res.Hash {
		mismatch := zerr.With(zerr.Wrap(domain.ErrMigrationMismatch, "cannot verify "+res.Path), "path", path)
		return res, zerr.With(mismatch, "hash", strconv.FormatUint(written, 16))
	}
	m.logger.Debug("Migrated " + res.Path)

	return res, nil
}
