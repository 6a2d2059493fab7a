package ports

import "go.trai.ch/libload/internal/core/domain"

// ConfigLoader defines the interface for loading the libload configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration starting from cwd, or reads path when it is not empty.
	Load(cwd, path string) (*domain.Config, error)
}
