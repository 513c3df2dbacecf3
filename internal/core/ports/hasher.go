package ports

import "go.trai.ch/jitc/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashSource returns the hex digest of the exact source text.
	HashSource(source string) string

	// ComputeInputHash hashes everything that affects the compiled artifact of
	// an entry: the generated file, the merged configuration and the given
	// input files or directories.
	ComputeInputHash(entry *domain.Entry, inputs []string) (string, error)
}
