package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ResolvedView is the transitive closure of one unit: every declaration file
// and include path needed to process it. Files are deduplicated by identity;
// includes are deduplicated with insertion order preserved, own entries
// before dependency entries, dependencies in declaration order.
//
// Each logical include entry appears as two physical paths: the source-tree
// path immediately followed by its generated-tree variant. Declaration files
// may be checked in or produced by an earlier generation phase, so the
// generator's search path covers both trees; source-first is the documented
// policy when the same-named file exists in both.
type ResolvedView struct {
	Files    []InternedString
	Includes []string
}

// Resolve computes the ResolvedView of the named unit or file group. It is a
// pure function of the snapshot and safe to call concurrently.
func (s *Snapshot) Resolve(name InternedString, layout Layout) (*ResolvedView, error) {
	r := &resolver{
		snap:   s,
		layout: layout,
		memo:   make(map[InternedString]*ResolvedView),
		state:  make(map[InternedString]visitState),
	}
	if _, ok := s.units[name]; !ok {
		if files, ok := s.groups[name]; ok {
			return &ResolvedView{Files: files}, nil
		}
		return nil, withMeta(ErrUnknownUnit, "unit", name.String())
	}
	return r.resolveUnit(name)
}

// Contribution resolves a dependency reference into its tagged contribution
// variant: WithTransitiveData for units, FallbackFiles for file groups.
func (s *Snapshot) Contribution(name InternedString, layout Layout) (DependencyContribution, error) {
	if _, ok := s.units[name]; ok {
		view, err := s.Resolve(name, layout)
		if err != nil {
			return nil, err
		}
		return WithTransitiveData{Files: view.Files, Includes: view.Includes}, nil
	}
	if files, ok := s.groups[name]; ok {
		return FallbackFiles{Files: files}, nil
	}
	return nil, withMeta(ErrUnknownDependency, "dependency", name.String())
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

type resolver struct {
	snap   *Snapshot
	layout Layout
	memo   map[InternedString]*ResolvedView
	state  map[InternedString]visitState
	path   []InternedString
}

func (r *resolver) resolveUnit(name InternedString) (*ResolvedView, error) {
	if view, ok := r.memo[name]; ok {
		return view, nil
	}
	if r.state[name] == visiting {
		return nil, r.cycleError(name)
	}
	r.state[name] = visiting
	r.path = append(r.path, name)

	u := r.snap.units[name]
	b := newViewBuilder()

	// Own contributions first.
	for _, f := range u.Files {
		b.addFile(f)
	}
	for _, inc := range u.Includes {
		if err := b.addInclude(inc.Logical(u.Package.String()), r.layout); err != nil {
			return nil, zerr.With(err, "unit", name.String())
		}
	}

	// Then dependencies, in declaration order.
	for _, dep := range u.Deps {
		contrib, err := r.contribution(dep)
		if err != nil {
			return nil, err
		}
		switch c := contrib.(type) {
		case WithTransitiveData:
			for _, f := range c.Files {
				b.addFile(f)
			}
			b.spliceIncludes(c.Includes)
		case FallbackFiles:
			for _, f := range c.Files {
				b.addFile(f)
			}
		}
	}

	r.state[name] = visited
	r.path = r.path[:len(r.path)-1]

	view := b.view()
	r.memo[name] = view
	return view, nil
}

func (r *resolver) contribution(name InternedString) (DependencyContribution, error) {
	if _, ok := r.snap.units[name]; ok {
		view, err := r.resolveUnit(name)
		if err != nil {
			return nil, err
		}
		return WithTransitiveData{Files: view.Files, Includes: view.Includes}, nil
	}
	if files, ok := r.snap.groups[name]; ok {
		return FallbackFiles{Files: files}, nil
	}
	return nil, withMeta(ErrUnknownDependency, "dependency", name.String())
}

func (r *resolver) cycleError(dep InternedString) error {
	start := 0
	for i, node := range r.path {
		if node == dep {
			start = i
			break
		}
	}
	var sb strings.Builder
	for _, node := range r.path[start:] {
		sb.WriteString(node.String())
		sb.WriteString(" -> ")
	}
	sb.WriteString(dep.String())
	return withMeta(ErrCycleDetected, "cycle", sb.String())
}

// viewBuilder accumulates files and includes with insertion-ordered dedup.
type viewBuilder struct {
	files        []InternedString
	seenFiles    map[InternedString]bool
	includes     []string
	seenIncludes map[string]bool
}

func newViewBuilder() *viewBuilder {
	return &viewBuilder{
		seenFiles:    make(map[InternedString]bool),
		seenIncludes: make(map[string]bool),
	}
}

func (b *viewBuilder) addFile(f InternedString) {
	if b.seenFiles[f] {
		return
	}
	b.seenFiles[f] = true
	b.files = append(b.files, f)
}

// addInclude emits both physical variants of a logical include path,
// source-tree first.
func (b *viewBuilder) addInclude(logical string, layout Layout) error {
	if err := CheckWithinWorkspace(logical); err != nil {
		return err
	}
	b.addPhysicalInclude(layout.SourcePath(logical))
	b.addPhysicalInclude(layout.GeneratedPath(logical))
	return nil
}

// spliceIncludes merges a dependency's already-resolved physical includes.
func (b *viewBuilder) spliceIncludes(includes []string) {
	for _, inc := range includes {
		b.addPhysicalInclude(inc)
	}
}

func (b *viewBuilder) addPhysicalInclude(p string) {
	if b.seenIncludes[p] {
		return
	}
	b.seenIncludes[p] = true
	b.includes = append(b.includes, p)
}

func (b *viewBuilder) view() *ResolvedView {
	return &ResolvedView{Files: b.files, Includes: b.includes}
}
