package ports

import (
	"context"

	"go.trai.ch/jitc/internal/core/domain"
)

// Coordinator makes sure a build step runs at most once at a time per key,
// within and across processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=coordinator.go -destination=mocks/mock_coordinator.go -package=mocks
type Coordinator interface {
	// Do runs fn while holding the lock identified by key. For file based
	// coordinators the key is the lock file path. Do returns early with the
	// error of ctx when ctx is done first.
	Do(ctx context.Context, key string, fn func(context.Context) (domain.Artifact, error)) (domain.Artifact, error)
}
