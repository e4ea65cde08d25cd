package ports

import "go.trai.ch/tdbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given working directory and returns
	// the declared workspace.
	Load(cwd string) (*domain.Workspace, error)
}
