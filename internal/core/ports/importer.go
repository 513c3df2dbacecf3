package ports

import (
	"context"

	"go.trai.ch/jitc/internal/core/domain"
)

// Importer builds a written cache entry and loads the resulting module.
//
//go:generate go run go.uber.org/mock/mockgen -source=importer.go -destination=mocks/mock_importer.go -package=mocks
type Importer interface {
	// Build compiles the entry if its artifact is missing or stale.
	// searchPath lists the directories modules are looked up in.
	Build(ctx context.Context, entry *domain.Entry, searchPath []string) (domain.Artifact, error)
	// Load opens a built artifact. Every call returns a module with its own
	// handle, so closing one does not affect the others.
	Load(entry *domain.Entry, artifact domain.Artifact) (*domain.Module, error)
}
