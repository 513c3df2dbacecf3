package ports

import "go.trai.ch/jitc/internal/core/domain"

// EntryCache manages generated files in a cache directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type EntryCache interface {
	// Resolve returns the absolute cache directory to use. An empty override
	// falls back to the configured default.
	Resolve(override string) (string, error)

	// Write creates the entry directory if needed and overwrites the entry file.
	Write(entry *domain.Entry) error

	// List returns the entries found in dir, sorted by ID.
	List(dir string) ([]domain.CachedEntry, error)

	// Remove deletes every file belonging to the entry.
	Remove(dir, entryID string) error

	// Clean deletes every entry in dir and reports how many were removed.
	Clean(dir string) (int, error)
}
