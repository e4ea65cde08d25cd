package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Registry is the mutable declaration surface of the configuration phase.
// Units and file groups are declared into it in order; dependencies must
// already be registered when referenced, which keeps the graph acyclic by
// construction. Once configuration is complete, Snapshot produces the
// read-only view everything else works from.
type Registry struct {
	units  map[InternedString]*Unit
	groups map[InternedString][]InternedString
	order  []InternedString
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		units:  make(map[InternedString]*Unit),
		groups: make(map[InternedString][]InternedString),
	}
}

// DeclareUnit registers a unit. It fails if the name is taken or if any
// listed dependency has not been declared yet.
func (r *Registry) DeclareUnit(u *Unit) error {
	if r.registered(u.Name) {
		return withMeta(ErrDuplicateUnit, "unit", u.Name.String())
	}
	for _, dep := range u.Deps {
		if !r.registered(dep) {
			return withMeta(ErrUnknownDependency,
				"unit", u.Name.String(),
				"dependency", dep.String())
		}
	}
	r.units[u.Name] = u
	r.order = append(r.order, u.Name)
	return nil
}

// DeclareFileGroup registers a plain list of declaration files under a name.
// File groups carry no include paths and no dependencies; depending on one
// contributes only its files.
func (r *Registry) DeclareFileGroup(name InternedString, files []InternedString) error {
	if r.registered(name) {
		return withMeta(ErrDuplicateUnit, "unit", name.String())
	}
	r.groups[name] = files
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) registered(name InternedString) bool {
	if _, ok := r.units[name]; ok {
		return true
	}
	_, ok := r.groups[name]
	return ok
}

// Snapshot returns an immutable view of the current declarations. The
// snapshot's identity covers every declaration in order, so equal IDs imply
// equal resolution results.
func (r *Registry) Snapshot() *Snapshot {
	units := make(map[InternedString]*Unit, len(r.units))
	for name, u := range r.units {
		units[name] = u
	}
	groups := make(map[InternedString][]InternedString, len(r.groups))
	for name, files := range r.groups {
		groups[name] = files
	}

	h := xxhash.New()
	for _, name := range r.order {
		_, _ = h.WriteString(name.String())
		_, _ = h.Write([]byte{0})
		if u, ok := r.units[name]; ok {
			hashUnit(h, u)
		} else {
			for _, f := range r.groups[name] {
				_, _ = h.WriteString(f.String())
				_, _ = h.Write([]byte{0})
			}
		}
		_, _ = h.Write([]byte{0})
	}

	return &Snapshot{
		id:     fmt.Sprintf("%016x", h.Sum64()),
		units:  units,
		groups: groups,
	}
}

func hashUnit(h *xxhash.Digest, u *Unit) {
	_, _ = h.WriteString(u.Package.String())
	_, _ = h.Write([]byte{0})
	for _, f := range u.Files {
		_, _ = h.WriteString(f.String())
		_, _ = h.Write([]byte{0})
	}
	for _, inc := range u.Includes {
		if inc.Kind == IncludeAbsolute {
			_, _ = h.WriteString(absoluteIncludePrefix)
		}
		_, _ = h.WriteString(inc.Raw)
		_, _ = h.Write([]byte{0})
	}
	for _, dep := range u.Deps {
		_, _ = h.WriteString(dep.String())
		_, _ = h.Write([]byte{0})
	}
}

// Snapshot is the immutable configuration handed to the resolution and
// generation phases. It is safe for concurrent use.
type Snapshot struct {
	id     string
	units  map[InternedString]*Unit
	groups map[InternedString][]InternedString
}

// ID returns the snapshot's stable identity.
func (s *Snapshot) ID() string {
	return s.id
}

// Unit looks up a declared unit by name.
func (s *Snapshot) Unit(name InternedString) (*Unit, bool) {
	u, ok := s.units[name]
	return u, ok
}

// UnitCount reports the number of declared units.
func (s *Snapshot) UnitCount() int {
	return len(s.units)
}
