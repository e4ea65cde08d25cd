package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh directory and restores the working
// directory afterwards.
func chdirTemp(t *testing.T) string {
	t.Helper()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
	return tmpDir
}

// writeGenerator writes a stand-in generator that writes a marker to the
// final argument, which tdbuild always passes as the -o output path.
func writeGenerator(t *testing.T, dir string) {
	t.Helper()
	script := `#!/bin/sh
for last; do :; done
printf generated > "$last"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen.sh"), []byte(script), 0o755))
}

func TestRun_Generate(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tmpDir := chdirTemp(t)
	writeGenerator(t, tmpDir)

	manifest := `
generator: ./gen.sh
groups:
  - name: ops
    package: ops
    file: ops.td
    targets:
      - opts: -gen-op-decls
        out: ops.h.inc
`
	require.NoError(t, os.WriteFile("tdbuild.yaml", []byte(manifest), 0o644))

	os.Args = []string{"tdbuild", "generate"}
	exitCode := run()
	assert.Equal(t, 0, exitCode)

	data, err := os.ReadFile(filepath.Join("generated", "ops", "ops.h.inc"))
	require.NoError(t, err)
	assert.Equal(t, "generated", string(data))
}

func TestRun_GeneratorFailure(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	chdirTemp(t)

	failing := "#!/bin/sh\nexit 1\n"
	require.NoError(t, os.WriteFile("fail.sh", []byte(failing), 0o755))

	manifest := `
generator: ./fail.sh
groups:
  - name: broken
    package: ops
    file: ops.td
    targets:
      - opts: -gen-op-defs
        out: ops.cpp.inc
`
	require.NoError(t, os.WriteFile("tdbuild.yaml", []byte(manifest), 0o644))

	os.Args = []string{"tdbuild", "generate"}
	assert.Equal(t, 1, run())
}

func TestRun_NoManifest(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	chdirTemp(t)

	os.Args = []string{"tdbuild", "generate"}
	assert.Equal(t, 1, run())
}

func TestRun_Script(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	chdirTemp(t)

	manifest := `
generator: bin/td-gen
groups:
  - name: scripted
    package: ops
    file: ops.td
    targets:
      - opts: -gen-op-decls
        out: ops.h.inc
`
	require.NoError(t, os.WriteFile("tdbuild.yaml", []byte(manifest), 0o644))

	os.Args = []string{"tdbuild", "script"}
	assert.Equal(t, 0, run())

	matches, err := filepath.Glob(filepath.Join("generated", "ops", "*.gen.sh"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "#!/bin/sh")
	assert.Contains(t, string(data), "'bin/td-gen'")
}
