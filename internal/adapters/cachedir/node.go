package cachedir

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/adapters/cas"
	"go.trai.ch/jitc/internal/adapters/config"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

// NodeID is the unique identifier for the entry cache Graft node.
const NodeID graft.ID = "adapter.entry_cache"

func init() {
	graft.Register(graft.Node[ports.EntryCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, cas.NodeID},
		Run: func(ctx context.Context) (ports.EntryCache, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.CacheDir, store), nil
		},
	})
}
