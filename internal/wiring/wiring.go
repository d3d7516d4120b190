// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tasks/internal/adapters/config"
	_ "go.trai.ch/tasks/internal/adapters/detector"
	_ "go.trai.ch/tasks/internal/adapters/fs"
	_ "go.trai.ch/tasks/internal/adapters/logger"
	_ "go.trai.ch/tasks/internal/adapters/manifest"
	_ "go.trai.ch/tasks/internal/adapters/migrate"
	_ "go.trai.ch/tasks/internal/adapters/prompt"
	_ "go.trai.ch/tasks/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/tasks/internal/app"
)
