package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasks/internal/core/ports"
)

// Node IDs for the file system adapters.
const (
	WalkerNodeID  graft.ID = "adapter.fs.walker"
	HasherNodeID  graft.ID = "adapter.fs.hasher"
	WorkDirNodeID graft.ID = "adapter.fs.workdir"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.WorkDir]{
		ID:        WorkDirNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WorkDir, error) {
			return NewWorkDir(), nil
		},
	})
}
