package ports

import "go.trai.ch/jitc/internal/core/domain"

// ConfigLoader defines the interface for loading runtime settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load layers the configuration file at path and the process environment
	// over the defaults. A missing file is not an error.
	Load(path string) (domain.Settings, error)
}
