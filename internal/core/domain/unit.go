// Package domain contains the core model of the table-definition generation
// framework: units, their transitive resolution, generation tasks, and the
// aggregation of generated artifacts into compilable units.
package domain

import (
	"path"
	"strings"
)

// absoluteIncludePrefix marks an include entry as workspace-root-relative.
const absoluteIncludePrefix = "//"

// IncludeKind classifies how an include entry is anchored.
type IncludeKind int

const (
	// IncludeRelative resolves against the declaring unit's package path.
	IncludeRelative IncludeKind = iota
	// IncludeAbsolute resolves against the workspace root.
	IncludeAbsolute
)

// IncludePath is one include-search-path entry as declared on a unit.
type IncludePath struct {
	Raw  string
	Kind IncludeKind
}

// ParseIncludePath classifies a raw include entry. Entries beginning with
// "//" are workspace-root-relative; everything else resolves against the
// declaring unit's package path.
func ParseIncludePath(raw string) IncludePath {
	if strings.HasPrefix(raw, absoluteIncludePrefix) {
		return IncludePath{Raw: strings.TrimPrefix(raw, absoluteIncludePrefix), Kind: IncludeAbsolute}
	}
	return IncludePath{Raw: raw, Kind: IncludeRelative}
}

// ParseIncludePaths classifies a list of raw include entries, preserving
// declaration order.
func ParseIncludePaths(raw []string) []IncludePath {
	if len(raw) == 0 {
		return nil
	}
	res := make([]IncludePath, len(raw))
	for i, s := range raw {
		res[i] = ParseIncludePath(s)
	}
	return res
}

// Logical returns the workspace-relative logical path of the entry when
// declared in the given package.
func (p IncludePath) Logical(pkg string) string {
	if p.Kind == IncludeAbsolute {
		return path.Clean(p.Raw)
	}
	return path.Join(pkg, p.Raw)
}

// Unit is a named node in the dependency graph. It owns declaration files,
// include-search paths, and references to previously declared dependencies.
// Units are immutable once declared.
type Unit struct {
	Name InternedString

	// Package is the workspace-relative directory the unit was declared in.
	// Relative includes resolve against it.
	Package InternedString

	// Files are the unit's own declaration files, workspace-relative, in
	// declaration order.
	Files []InternedString

	// Includes are the unit's own include entries, in declaration order.
	Includes []IncludePath

	// Deps reference units or file groups that must already be declared.
	Deps []InternedString
}
