package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasks/internal/adapters/logger"
	"go.trai.ch/tasks/internal/core/ports"
)

// NodeID is the graft node ID for the definition loader.
const NodeID graft.ID = "adapter.definition_loader"

func init() {
	graft.Register(graft.Node[ports.DefinitionLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DefinitionLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
