package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tdbuild/internal/core/ports"
)

const (
	// WalkerNodeID identifies the Walker node (concrete, needed by Hasher).
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ResolverNodeID identifies the InputResolver node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// HasherNodeID identifies the Hasher node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.InputResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InputResolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})
}
