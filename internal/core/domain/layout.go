package domain

import (
	"path/filepath"
	"strings"
)

const (
	// TdbuildDirName is the name of the internal workspace directory.
	TdbuildDirName = ".tdbuild"

	// StateFileName is the name of the generation record store file.
	StateFileName = "state.json"

	// ManifestYAMLName is the default YAML manifest name.
	ManifestYAMLName = "tdbuild.yaml"

	// ManifestHCLName is the HCL manifest name looked up when no YAML
	// manifest is present.
	ManifestHCLName = "tdbuild.hcl"

	// GeneratedDirName is the default root of the generated output tree.
	GeneratedDirName = "generated"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ScriptPerm is the permission for emitted conformance scripts.
	ScriptPerm = 0o755
)

// DefaultStatePath returns the default path of the generation record store.
func DefaultStatePath() string {
	return filepath.Join(TdbuildDirName, StateFileName)
}

// Layout describes the two physical trees a workspace-relative path can live
// in: the checked-in source tree and the generated output tree. Declaration
// files may come from either, so the resolver emits both variants for every
// logical include path.
type Layout struct {
	// GeneratedRoot is the workspace-relative root of the generated tree.
	GeneratedRoot string
}

// NewLayout returns a Layout rooted at generatedRoot, defaulting to
// GeneratedDirName when empty.
func NewLayout(generatedRoot string) Layout {
	if generatedRoot == "" {
		generatedRoot = GeneratedDirName
	}
	return Layout{GeneratedRoot: filepath.Clean(generatedRoot)}
}

// SourcePath maps a workspace-relative logical path to the source tree.
func (l Layout) SourcePath(rel string) string {
	return filepath.Clean(rel)
}

// GeneratedPath maps a workspace-relative logical path to the generated tree.
func (l Layout) GeneratedPath(rel string) string {
	return filepath.Join(l.GeneratedRoot, rel)
}

// CheckWithinWorkspace verifies that a workspace-relative path stays under
// the workspace root after cleaning.
func CheckWithinWorkspace(rel string) error {
	clean := filepath.ToSlash(filepath.Clean(rel))
	if clean == ".." || strings.HasPrefix(clean, "../") || filepath.IsAbs(rel) {
		return withMeta(ErrPathEscapesWorkspace, "path", rel)
	}
	return nil
}
