// Package config provides the manifest loaders for tdbuild.
package config

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader. It reads a YAML or HCL manifest,
// chosen by file extension, and declares its contents into a fresh registry.
type Loader struct {
	// Filename overrides manifest discovery when set.
	Filename string

	resolver ports.InputResolver
	logger   ports.Logger
}

// NewLoader creates a new Loader with default manifest discovery.
func NewLoader(resolver ports.InputResolver, logger ports.Logger) *Loader {
	return &Loader{resolver: resolver, logger: logger}
}

// Load reads the manifest from the given working directory and returns the
// declared workspace.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	name, err := l.manifestName(cwd)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(cwd, name)
	manifest, err := l.parse(manifestPath)
	if err != nil {
		return nil, err
	}

	return l.buildWorkspace(cwd, manifest)
}

// manifestName returns the configured filename, or discovers the manifest by
// trying the YAML name first, then the HCL name.
func (l *Loader) manifestName(cwd string) (string, error) {
	if l.Filename != "" {
		return l.Filename, nil
	}
	for _, candidate := range []string{domain.ManifestYAMLName, domain.ManifestHCLName} {
		if _, err := os.Stat(filepath.Join(cwd, candidate)); err == nil {
			return candidate, nil
		}
	}
	return "", zerr.With(zerr.New("no manifest found"), "dir", cwd)
}

func (l *Loader) parse(manifestPath string) (*Manifest, error) {
	if strings.HasSuffix(manifestPath, ".hcl") {
		return parseHCL(manifestPath)
	}

	data, err := os.ReadFile(manifestPath) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}
	return &manifest, nil
}

// buildWorkspace declares the manifest's contents in order. File groups and
// libraries go through the registry, which enforces unique names and
// declare-before-reference; groups are planned later against the snapshot.
// Group names must be unique too, since they namespace sub-task names.
func (l *Loader) buildWorkspace(cwd string, manifest *Manifest) (*domain.Workspace, error) {
	layout := domain.NewLayout(manifest.Generated)
	registry := domain.NewRegistry()

	for _, fg := range manifest.Filegroups {
		files, err := l.resolveFiles(cwd, "", fg.Files)
		if err != nil {
			return nil, zerr.With(err, "filegroup", fg.Name)
		}
		if err := registry.DeclareFileGroup(domain.NewInternedString(fg.Name), domain.InternStrings(files)); err != nil {
			return nil, err
		}
	}

	for _, lib := range manifest.Libraries {
		files, err := l.resolveFiles(cwd, lib.Package, lib.Files)
		if err != nil {
			return nil, zerr.With(err, "library", lib.Name)
		}
		unit := &domain.Unit{
			Name:     domain.NewInternedString(lib.Name),
			Package:  domain.NewInternedString(path.Clean(lib.Package)),
			Files:    domain.InternStrings(files),
			Includes: domain.ParseIncludePaths(lib.Includes),
			Deps:     domain.InternStrings(lib.Deps),
		}
		if err := registry.DeclareUnit(unit); err != nil {
			return nil, err
		}
	}

	omit := manifest.Omit[runtime.GOOS]

	seen := make(map[string]bool, len(manifest.Groups))
	groups := make([]*domain.Group, 0, len(manifest.Groups))
	for _, dto := range manifest.Groups {
		if seen[dto.Name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateGroup, ""), "group", dto.Name)
		}
		seen[dto.Name] = true
		group, err := l.buildGroup(cwd, manifest, &dto, omit)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return &domain.Workspace{
		Layout:   layout,
		Snapshot: registry.Snapshot(),
		Groups:   groups,
	}, nil
}

func (l *Loader) buildGroup(cwd string, manifest *Manifest, dto *GroupDTO, omit []string) (*domain.Group, error) {
	generator := dto.Generator
	if generator == "" {
		generator = manifest.Generator
	}
	if generator == "" {
		return nil, zerr.With(zerr.New("group declares no generator"), "group", dto.Name)
	}
	if dto.File == "" {
		return nil, zerr.With(zerr.New("group declares no primary file"), "group", dto.Name)
	}

	extra, err := l.resolveFiles(cwd, dto.Package, dto.Extra)
	if err != nil {
		return nil, zerr.With(err, "group", dto.Name)
	}

	targets := make([]domain.TargetSpec, len(dto.Targets))
	for i, t := range dto.Targets {
		targets[i] = domain.TargetSpec{Opts: t.Opts, Out: t.Out}
	}

	return &domain.Group{
		Name:           dto.Name,
		Package:        domain.NewInternedString(path.Clean(dto.Package)),
		Generator:      generator,
		PrimaryFile:    domain.NewInternedString(path.Join(dto.Package, dto.File)),
		ExtraFiles:     domain.InternStrings(extra),
		Includes:       domain.ParseIncludePaths(dto.Includes),
		Deps:           domain.InternStrings(dto.Deps),
		Targets:        targets,
		DocOnlyOpts:    dto.DocOnly,
		StripPrefix:    dto.StripPrefix,
		OmitOptions:    omit,
		EmitTestScript: dto.TestScript,
	}, nil
}

// resolveFiles expands file entries relative to pkg. Entries with glob
// metacharacters must match existing files; plain paths pass through, since
// a declaration file may itself be generated by an earlier phase and not
// exist yet. All results are workspace-relative.
func (l *Loader) resolveFiles(cwd, pkg string, entries []string) ([]string, error) {
	var files []string
	for _, entry := range entries {
		logical := path.Join(pkg, entry)
		if !strings.ContainsAny(entry, "*?[") {
			files = append(files, logical)
			continue
		}

		matches, err := l.resolver.ResolveInputs([]string{logical}, cwd)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			rel, err := filepath.Rel(cwd, match)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize match"), "path", match)
			}
			files = append(files, filepath.ToSlash(rel))
		}
	}
	return files, nil
}
