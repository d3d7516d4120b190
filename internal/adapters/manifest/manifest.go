// Package manifest reads the torizoncore-builder manifest.
package manifest

import (
	"os"

	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestReader = (*Reader)(nil)

// buildFile is the subset of tcbuild.yaml the runner reads.
type buildFile struct {
	Output *struct {
		EasyInstaller *struct {
			Local *string `yaml:"local"`
		} `yaml:"easy-installer"`
	} `yaml:"output"`
}

// Reader implements ports.ManifestReader over YAML files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// OutputFolder returns output.easy-installer.local from the manifest at path.
func (r *Reader) OutputFolder(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is under the workspace root
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrMalformedManifest, err.Error()), "path", path)
	}

	var file buildFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrMalformedManifest, "failed to parse manifest"), "path", path)
	}

	if file.Output == nil || file.Output.EasyInstaller == nil || file.Output.EasyInstaller.Local == nil {
		return "", zerr.With(
			zerr.Wrap(domain.ErrMalformedManifest, "make sure the manifest has the output.easy-installer.local property"),
			"path", path)
	}

	return *file.Output.EasyInstaller.Local, nil
}
