package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasks/internal/core/ports"
)

// NodeID is the graft node ID for the manifest reader.
const NodeID graft.ID = "adapter.manifest"

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestReader, error) {
			return NewReader(), nil
		},
	})
}
