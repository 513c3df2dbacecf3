package ports

import (
	"context"

	"go.trai.ch/jitc/internal/core/domain"
)

// PlatformProvider supplies the baseline build configuration of the target platform.
//
//go:generate go run go.uber.org/mock/mockgen -source=platform.go -destination=mocks/mock_platform.go -package=mocks
type PlatformProvider interface {
	Platform(ctx context.Context) (domain.Platform, error)
}
