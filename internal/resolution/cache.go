// Package resolution memoizes resolved views across planning passes.
package resolution

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/tdbuild/internal/core/domain"
)

// DefaultCacheSize bounds the number of memoized views. Workspaces rarely
// exceed a few hundred units; the bound only guards pathological manifests.
const DefaultCacheSize = 1024

// Cache memoizes ResolvedViews keyed by snapshot identity and unit name.
// Snapshots are immutable, so an entry never goes stale; a new snapshot has
// a new identity and misses cleanly.
type Cache struct {
	views *lru.Cache[string, *domain.ResolvedView]
}

// NewCache creates a Cache holding up to size views.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	views, err := lru.New[string, *domain.ResolvedView](size)
	if err != nil {
		return nil, err
	}
	return &Cache{views: views}, nil
}

// Resolve returns the transitive view of name, computing and caching it on
// first use.
func (c *Cache) Resolve(snap *domain.Snapshot, layout domain.Layout, name domain.InternedString) (*domain.ResolvedView, error) {
	key := snap.ID() + "\x00" + name.String()
	if view, ok := c.views.Get(key); ok {
		return view, nil
	}

	view, err := snap.Resolve(name, layout)
	if err != nil {
		return nil, err
	}
	c.views.Add(key, view)
	return view, nil
}

// ResolveFunc adapts the cache to the domain's planning callback.
func (c *Cache) ResolveFunc(snap *domain.Snapshot, layout domain.Layout) domain.ResolveFunc {
	return func(name domain.InternedString) (*domain.ResolvedView, error) {
		return c.Resolve(snap, layout, name)
	}
}
