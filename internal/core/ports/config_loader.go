package ports

import "go.trai.ch/forge/internal/core/domain"

// ConfigLoader loads the declared rules and targets.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the build declarations from the configuration file at path.
	Load(path string) (*domain.BuildSet, error)
}
