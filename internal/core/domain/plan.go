package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// Group declares one generation group: a primary declaration file processed
// by a generator under several option strings, each producing one output.
type Group struct {
	Name string

	// Package is the workspace-relative directory of the declaring manifest.
	Package InternedString

	// Generator is the path of the generator executable.
	Generator string

	// PrimaryFile is the primary declaration file, workspace-relative.
	PrimaryFile InternedString

	// ExtraFiles are additional own declaration files, workspace-relative.
	ExtraFiles []InternedString

	// Includes are the group's own include entries.
	Includes []IncludePath

	// Deps reference declared units or file groups.
	Deps []InternedString

	// Targets are the (option-string, output-file) pairs to generate.
	Targets []TargetSpec

	// DocOnlyOpts lists option strings whose outputs are documentation-only.
	DocOnlyOpts []string

	// StripPrefix is forwarded verbatim to the compiled unit.
	StripPrefix string

	// OmitOptions lists option flags dropped from the command line on the
	// current platform. Sub-task names are derived from the declared option
	// string, so omitting a flag never renames a task.
	OmitOptions []string

	// EmitTestScript requests a self-contained conformance script alongside
	// each generated output.
	EmitTestScript bool
}

// ResolveFunc resolves a unit or file-group name to its transitive view.
// Plans are computed against an immutable snapshot, so implementations may
// memoize freely.
type ResolveFunc func(name InternedString) (*ResolvedView, error)

// Plan is the executable form of one group: its generation tasks plus the
// compiled unit their outputs aggregate into.
type Plan struct {
	Group *Group
	Tasks []*GenerationTask
	Unit  *CompiledUnit
}

// PlanGroup resolves a group against the snapshot and constructs one
// generation task per target. The group's own files and includes come first,
// dependency contributions follow in declaration order, exactly as unit
// resolution orders them.
func PlanGroup(snap *Snapshot, layout Layout, g *Group, resolve ResolveFunc) (*Plan, error) {
	b := newViewBuilder()
	pkg := g.Package.String()

	b.addFile(g.PrimaryFile)
	for _, f := range g.ExtraFiles {
		b.addFile(f)
	}
	for _, inc := range g.Includes {
		if err := b.addInclude(inc.Logical(pkg), layout); err != nil {
			return nil, zerr.With(err, "group", g.Name)
		}
	}

	for _, dep := range g.Deps {
		view, err := resolve(dep)
		if err != nil {
			return nil, zerr.With(err, "group", g.Name)
		}
		for _, f := range view.Files {
			b.addFile(f)
		}
		b.spliceIncludes(view.Includes)
	}
	view := b.view()

	outputs := make([]TargetSpec, 0, len(g.Targets))
	tasks := make([]*GenerationTask, 0, len(g.Targets))
	for _, target := range g.Targets {
		out := layout.GeneratedPath(path.Join(pkg, target.Out))
		outputs = append(outputs, TargetSpec{Opts: target.Opts, Out: out})
		tasks = append(tasks, &GenerationTask{
			Name:        SubTaskName(g.Name, target.Opts),
			Group:       g.Name,
			Generator:   g.Generator,
			PrimaryFile: g.PrimaryFile.String(),
			Options:     splitOpts(target.Opts, g.OmitOptions),
			Includes:    view.Includes,
			Inputs:      view.Files,
			OutputPath:  out,
		})
	}

	unit, err := Aggregate(g.Name, outputs, g.DocOnlyOpts, g.StripPrefix)
	if err != nil {
		return nil, err
	}

	return &Plan{Group: g, Tasks: tasks, Unit: unit}, nil
}

// splitOpts splits an option string on whitespace, preserving order and
// dropping platform-omitted flags.
func splitOpts(opts string, omit []string) []string {
	fields := strings.Fields(opts)
	if len(omit) == 0 {
		return fields
	}
	omitted := make(map[string]bool, len(omit))
	for _, o := range omit {
		omitted[o] = true
	}
	kept := fields[:0]
	for _, f := range fields {
		if !omitted[f] {
			kept = append(kept, f)
		}
	}
	return kept
}
