package platform

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/adapters/config"
	"go.trai.ch/jitc/internal/adapters/logger"
	"go.trai.ch/jitc/internal/adapters/shell"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

// NodeID is the unique identifier for the platform provider Graft node.
const NodeID graft.ID = "adapter.platform"

func init() {
	graft.Register(graft.Node[ports.PlatformProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PlatformProvider, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(
				settings.Platform,
				settings.PkgConfig,
				settings.PlatformPackage,
				executor,
				log,
			), nil
		},
	})
}
