package searchpath

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/core/ports"
)

// NodeID is the unique identifier for the search path Graft node.
const NodeID graft.ID = "adapter.search_path"

func init() {
	graft.Register(graft.Node[ports.SearchPath]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SearchPath, error) {
			return New(), nil
		},
	})
}
