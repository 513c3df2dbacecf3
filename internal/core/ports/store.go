package ports

import "go.trai.ch/jitc/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for an entry in the given cache directory.
	// Returns nil, nil if not found.
	Get(cacheDir, entryID string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(cacheDir string, info domain.BuildInfo) error

	// Delete removes the build info. Deleting a missing record is not an error.
	Delete(cacheDir, entryID string) error
}
