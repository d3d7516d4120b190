package fs

import (
	"os"

	"go.trai.ch/tasks/internal/core/ports"
)

var _ ports.WorkDir = (*WorkDir)(nil)

// WorkDir implements ports.WorkDir over the process working directory.
type WorkDir struct{}

// NewWorkDir creates a new WorkDir.
func NewWorkDir() *WorkDir {
	return &WorkDir{}
}

// Getwd returns the current working directory.
func (w *WorkDir) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the current working directory.
func (w *WorkDir) Chdir(dir string) error {
	return os.Chdir(dir)
}
