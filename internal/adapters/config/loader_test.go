package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tdbuild/internal/adapters/config"
	"go.trai.ch/tdbuild/internal/adapters/fs"
	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const yamlManifest = `
version: "1"
generator: bin/td-gen
generated: generated

filegroups:
  - name: shared_files
    files:
      - shared/helpers.td

libraries:
  - name: base_def
    package: base
    files:
      - base.td
    includes:
      - include
  - name: ops_def
    package: ops
    files:
      - ops.td
    includes:
      - include
    deps:
      - base_def
      - shared_files

groups:
  - name: ops
    package: ops
    file: ops.td
    includes:
      - include
    deps:
      - base_def
    targets:
      - opts: -gen-op-decls
        out: ops.h.inc
      - opts: -gen-op-doc
        out: ops.md
    docOnly:
      - -gen-op-doc
    testScript: true
`

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(fs.NewResolver(), mockLogger)
}

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Load_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", yamlManifest)

	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "generated", ws.Layout.GeneratedRoot)
	assert.Equal(t, 2, ws.Snapshot.UnitCount())

	ops, ok := ws.Snapshot.Unit(domain.NewInternedString("ops_def"))
	require.True(t, ok)
	assert.Equal(t, "ops", ops.Package.String())
	require.Len(t, ops.Files, 1)
	assert.Equal(t, "ops/ops.td", ops.Files[0].String())
	require.Len(t, ops.Deps, 2)
	assert.Equal(t, "base_def", ops.Deps[0].String())

	require.Len(t, ws.Groups, 1)
	group := ws.Groups[0]
	assert.Equal(t, "ops", group.Name)
	assert.Equal(t, "bin/td-gen", group.Generator, "group inherits the manifest default generator")
	assert.Equal(t, "ops/ops.td", group.PrimaryFile.String())
	assert.Equal(t, []string{"-gen-op-doc"}, group.DocOnlyOpts)
	assert.True(t, group.EmitTestScript)
	require.Len(t, group.Targets, 2)
	assert.Equal(t, domain.TargetSpec{Opts: "-gen-op-decls", Out: "ops.h.inc"}, group.Targets[0])
}

// The loader declares filegroups before libraries, and libraries in manifest
// order, so declare-before-reference holds end to end.
func TestLoader_Load_DeclarationOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", yamlManifest)

	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	view, err := ws.Snapshot.Resolve(domain.NewInternedString("ops_def"), ws.Layout)
	require.NoError(t, err)

	files := make([]string, len(view.Files))
	for i, f := range view.Files {
		files[i] = f.String()
	}
	assert.Equal(t, []string{"ops/ops.td", "base/base.td", "shared/helpers.td"}, files)
	assert.Equal(t, []string{
		"ops/include", "generated/ops/include",
		"base/include", "generated/base/include",
	}, view.Includes)
}

func TestLoader_Load_ForwardReferenceFails(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", `
generator: bin/td-gen
libraries:
  - name: ops_def
    package: ops
    files: [ops.td]
    deps: [base_def]
  - name: base_def
    package: base
    files: [base.td]
`)

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrUnknownDependency)
}

func TestLoader_Load_GlobExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "base"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "base", "a.td"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "base", "b.td"), nil, 0o644))
	writeManifest(t, tmpDir, "tdbuild.yaml", `
generator: bin/td-gen
libraries:
  - name: base_def
    package: base
    files: ["*.td"]
`)

	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	unit, ok := ws.Snapshot.Unit(domain.NewInternedString("base_def"))
	require.True(t, ok)
	require.Len(t, unit.Files, 2)
	assert.Equal(t, "base/a.td", unit.Files[0].String())
	assert.Equal(t, "base/b.td", unit.Files[1].String())
}

func TestLoader_Load_PlainPathMayNotExist(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", `
generator: bin/td-gen
libraries:
  - name: base_def
    package: base
    files: [generated-later.td]
`)

	// Plain entries pass through unchecked; the file may be produced by an
	// earlier generation phase.
	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)
	unit, ok := ws.Snapshot.Unit(domain.NewInternedString("base_def"))
	require.True(t, ok)
	assert.Equal(t, "base/generated-later.td", unit.Files[0].String())
}

func TestLoader_Load_OmitForCurrentPlatform(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", `
generator: bin/td-gen
groups:
  - name: ops
    package: ops
    file: ops.td
    targets:
      - opts: -gen-op-decls --long-string-literals
        out: ops.h.inc
omit:
  `+runtime.GOOS+`:
    - --long-string-literals
  some-other-os:
    - --unrelated
`)

	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	require.Len(t, ws.Groups, 1)
	assert.Equal(t, []string{"--long-string-literals"}, ws.Groups[0].OmitOptions)
}

func TestLoader_Load_MissingGenerator(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", `
groups:
  - name: ops
    package: ops
    file: ops.td
`)

	_, err := newLoader(t).Load(tmpDir)
	require.Error(t, err)
}

func TestLoader_Load_DuplicateGroupName(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "tdbuild.yaml", `
version: "1"
generator: bin/td-gen

groups:
  - name: ops
    package: ops
    file: ops.td
    targets:
      - opts: -gen-op-decls
        out: ops.h.inc
  - name: ops
    package: other
    file: other.td
    targets:
      - opts: -gen-op-defs
        out: other.cpp.inc
`)

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrDuplicateGroup)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "ops", zErr.Metadata()["group"])
}

func TestLoader_Load_NoManifest(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.Error(t, err)
}

func TestLoader_Load_FilenameOverride(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "custom.yaml", yamlManifest)

	loader := newLoader(t)
	loader.Filename = "custom.yaml"

	ws, err := loader.Load(tmpDir)
	require.NoError(t, err)
	assert.Len(t, ws.Groups, 1)
}
