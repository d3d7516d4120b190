package ports

import (
	"context"

	"go.trai.ch/tasks/internal/core/domain"
)

// Launcher spawns a resolved command line and waits for it to exit.
//
//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Launch runs cmd with env as its complete environment, inheriting the
	// standard streams. It returns the child exit status. The error is non-nil
	// only when the child could not be started or was interrupted.
	Launch(ctx context.Context, cmd domain.CommandLine, env []string) (int, error)
}
