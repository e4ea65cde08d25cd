// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tdbuild/internal/adapters/cas"
	_ "go.trai.ch/tdbuild/internal/adapters/config"
	_ "go.trai.ch/tdbuild/internal/adapters/fs"
	_ "go.trai.ch/tdbuild/internal/adapters/gen"
	_ "go.trai.ch/tdbuild/internal/adapters/logger"
	_ "go.trai.ch/tdbuild/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/tdbuild/internal/app"
	_ "go.trai.ch/tdbuild/internal/engine/scheduler"
)
