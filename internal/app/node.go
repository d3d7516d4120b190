package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasks/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/migrate"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/prompt"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tasks/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			prompt.NodeID,
			manifest.NodeID,
			fs.WorkDirNodeID,
			logger.NodeID,
			migrate.NodeID,
			detector.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.DefinitionLoader](ctx)
	if err != nil {
		return nil, err
	}

	launcher, err := graft.Dep[ports.Launcher](ctx)
	if err != nil {
		return nil, err
	}

	prompter, err := graft.Dep[ports.Prompter](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}

	workdir, err := graft.Dep[ports.WorkDir](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	migrator, err := graft.Dep[*migrate.Migrator](ctx)
	if err != nil {
		return nil, err
	}

	det, err := graft.Dep[*detector.Detector](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, launcher, prompter, reader, workdir, log, migrator, det), nil
}
