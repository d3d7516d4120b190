package detector

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the graft node ID for the environment detector.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Detector, error) {
			return New(), nil
		},
	})
}
