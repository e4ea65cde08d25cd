package app

import (
	"go.trai.ch/tdbuild/internal/adapters/config"
	"go.trai.ch/tdbuild/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App          *App
	Logger       ports.Logger
	configLoader *config.Loader
}

// SetManifestPath overrides manifest discovery with an explicit file. Called
// by the CLI when the user passes --config.
func (c *Components) SetManifestPath(path string) {
	if c.configLoader != nil {
		c.configLoader.Filename = path
	}
}
