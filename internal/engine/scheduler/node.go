package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tdbuild/internal/adapters/cas"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tdbuild/internal/adapters/fs"                  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tdbuild/internal/adapters/gen"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tdbuild/internal/adapters/telemetry/progrock"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tdbuild/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gen.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			invoker, err := graft.Dep[ports.Invoker](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.RecordStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(invoker, hasher, store, telemetry), nil
		},
	})
}
