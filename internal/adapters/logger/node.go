package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/adapters/config"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			level, err := domain.ParseLogLevel(settings.LogLevel)
			if err != nil {
				return nil, err
			}
			return NewWithOptions(os.Stderr, Options{Level: level, Format: settings.LogFormat}), nil
		},
	})
}
