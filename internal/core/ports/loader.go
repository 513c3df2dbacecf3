package ports

import "go.trai.ch/jitc/internal/core/domain"

// Loader opens compiled shared objects.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Loader interface {
	Open(path string) (domain.Library, error)
}
