package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/core/ports"
)

// NodeID is the unique identifier for the build coordinator Graft node.
const NodeID graft.ID = "adapter.coordinator"

func init() {
	graft.Register(graft.Node[ports.Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Coordinator, error) {
			return NewCoordinator(), nil
		},
	})
}
