package prompt

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasks/internal/core/ports"
)

// NodeID is the graft node ID for the terminal prompter.
const NodeID graft.ID = "adapter.prompter"

func init() {
	graft.Register(graft.Node[ports.Prompter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Prompter, error) {
			return New(nil, nil), nil
		},
	})
}
