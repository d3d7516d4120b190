package migrate

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasks/internal/adapters/fs"
	"go.trai.ch/tasks/internal/adapters/logger"
	"go.trai.ch/tasks/internal/core/ports"
)

// NodeID is the graft node ID for the migrator.
const NodeID graft.ID = "adapter.migrate"

func init() {
	graft.Register(graft.Node[*Migrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Migrator, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(walker, hasher, log), nil
		},
	})
}
