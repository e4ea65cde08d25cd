package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tdbuild/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tdbuild/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/tdbuild/internal/engine/scheduler"
	"go.trai.ch/tdbuild/internal/resolution"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			invoker, err := graft.Dep[ports.Invoker](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := resolution.NewCache(resolution.DefaultCacheSize)
			if err != nil {
				return nil, err
			}

			return New(loader, sched, invoker, telemetry, log, cache), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	// The graph registers the loader behind its port; the CLI needs the
	// concrete type to override manifest discovery.
	fileLoader, _ := loader.(*config.Loader)

	return &Components{
		App:          app,
		Logger:       log,
		configLoader: fileLoader,
	}, nil
}
