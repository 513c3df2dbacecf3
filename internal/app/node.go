package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/adapters/cachedir"           //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/importer"           //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/lock"               //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/platform"           //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/searchpath"         //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/jitc/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			platform.NodeID,
			fs.HasherNodeID,
			cachedir.NodeID,
			searchpath.NodeID,
			importer.NodeID,
			lock.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	provider, err := graft.Dep[ports.PlatformProvider](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.EntryCache](ctx)
	if err != nil {
		return nil, err
	}
	searchPath, err := graft.Dep[ports.SearchPath](ctx)
	if err != nil {
		return nil, err
	}
	imp, err := graft.Dep[ports.Importer](ctx)
	if err != nil {
		return nil, err
	}
	coordinator, err := graft.Dep[ports.Coordinator](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(provider, hasher, cache, searchPath, imp, coordinator, telemetry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
