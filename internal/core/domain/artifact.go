package domain

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// TargetSpec is one (option-string, output-file) pair of a generation group.
type TargetSpec struct {
	// Opts is the full generator option string, e.g. "-gen-op-decls".
	Opts string

	// Out is the output file, relative to the group's package.
	Out string
}

// Artifact is the result of one successful generator invocation.
type Artifact struct {
	TaskName   string
	OutputPath string
}

// CompiledUnit is the downstream buildable unit assembled from a group's
// generated outputs.
type CompiledUnit struct {
	Name string

	// Headers are the generated files exposed for downstream compilation.
	// Documentation-only outputs are generated but not listed here, and a
	// unit with a StripPrefix exposes no headers at all: its outputs are
	// textual-only includable files.
	Headers []string

	// Outputs lists every (option string, output path) pair of the group,
	// including documentation-only ones.
	Outputs []TargetSpec

	// StripPrefix, when set, is passed through verbatim to the downstream
	// compiled-unit declaration. The aggregator does not rewrite paths.
	StripPrefix string
}

// subTaskHashWidth is the hex width of the disambiguating hash suffix.
const subTaskHashWidth = 8

// SubTaskName derives the unique sub-task name for one target of a group.
// The option string is normalized to an identifier, and a fixed-width stable
// hash of the full option string is appended so two distinct option strings
// that normalize identically never collide. The hash disambiguates, it does
// not replace the readable name.
func SubTaskName(group, opts string) string {
	normalized := normalizeTag(opts)
	sum := xxhash.Sum64String(opts)
	return fmt.Sprintf("%s_%s_%0*x", group, normalized, subTaskHashWidth, sum&0xffffffff)
}

// normalizeTag rewrites an option string into an identifier, mapping every
// non-identifier character to an underscore and collapsing runs. An option
// string with no identifier characters at all falls back to "gen".
func normalizeTag(opts string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range opts {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	s := strings.Trim(sb.String(), "_")
	if s == "" {
		return "gen"
	}
	return s
}

// Aggregate bundles a group's outputs into a CompiledUnit. Targets whose
// option string is in docOnlyOpts still execute and still produce their file,
// but the file is excluded from the header list; callers may reference it by
// path. A non-empty stripPrefix marks the outputs textual-only and empties
// the header list entirely. Duplicate sub-task names within the group are a
// configuration error.
func Aggregate(group string, outputs []TargetSpec, docOnlyOpts []string, stripPrefix string) (*CompiledUnit, error) {
	docOnly := make(map[string]bool, len(docOnlyOpts))
	for _, opt := range docOnlyOpts {
		docOnly[opt] = true
	}

	seen := make(map[string]string, len(outputs))
	unit := &CompiledUnit{
		Name:        group,
		Outputs:     outputs,
		StripPrefix: stripPrefix,
	}
	for _, out := range outputs {
		name := SubTaskName(group, out.Opts)
		if prev, ok := seen[name]; ok {
			return nil, withMeta(ErrAmbiguousTarget,
				"group", group,
				"sub_task", name,
				"options", out.Opts,
				"conflicts_with", prev)
		}
		seen[name] = out.Opts

		if stripPrefix == "" && !docOnly[out.Opts] {
			unit.Headers = append(unit.Headers, out.Out)
		}
	}
	return unit, nil
}
