package domain

// Workspace is the loaded configuration of one build tree: the physical
// layout, the immutable declaration snapshot, and the generation groups, in
// manifest order.
type Workspace struct {
	Layout   Layout
	Snapshot *Snapshot
	Groups   []*Group
}

// Group looks up a generation group by name.
func (w *Workspace) Group(name string) (*Group, bool) {
	for _, g := range w.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// SelectGroups returns the groups matching the given names, or every group
// when names is empty. Unknown names are an error.
func (w *Workspace) SelectGroups(names []string) ([]*Group, error) {
	if len(names) == 0 {
		return w.Groups, nil
	}
	selected := make([]*Group, 0, len(names))
	for _, name := range names {
		g, ok := w.Group(name)
		if !ok {
			return nil, withMeta(ErrNoGroupsMatched, "group", name)
		}
		selected = append(selected, g)
	}
	return selected, nil
}
