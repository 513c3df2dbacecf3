// Package importer selects the configured compile-and-import facility.
package importer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/internal/adapters/cas"
	"go.trai.ch/jitc/internal/adapters/config"
	"go.trai.ch/jitc/internal/adapters/cppimport"
	"go.trai.ch/jitc/internal/adapters/fs"
	"go.trai.ch/jitc/internal/adapters/loader"
	"go.trai.ch/jitc/internal/adapters/logger"
	"go.trai.ch/jitc/internal/adapters/shell"
	"go.trai.ch/jitc/internal/adapters/toolchain"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the importer Graft node.
const NodeID graft.ID = "adapter.importer"

func init() {
	graft.Register(graft.Node[ports.Importer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			cas.NodeID,
			loader.NodeID,
		},
		Run: run,
	})
}

func run(ctx context.Context) (ports.Importer, error) {
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

	switch settings.Importer {
	case domain.ImporterCppimport:
		return cppimport.New(settings.Python, executor, log), nil
	case domain.ImporterToolchain:
		return newToolchain(ctx, settings.Compiler, executor, log)
	default:
		return nil, zerr.With(domain.ErrUnknownImporter, "importer", string(settings.Importer))
	}
}

func newToolchain(
	ctx context.Context,
	compiler string,
	executor ports.Executor,
	log ports.Logger,
) (ports.Importer, error) {
	resolver, err := graft.Dep[ports.InputResolver](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}
	ld, err := graft.Dep[ports.Loader](ctx)
	if err != nil {
		return nil, err
	}
	return toolchain.New(compiler, toolchain.Deps{
		Executor: executor,
		Resolver: resolver,
		Hasher:   hasher,
		Verifier: verifier,
		Store:    store,
		Loader:   ld,
		Logger:   log,
	}), nil
}
