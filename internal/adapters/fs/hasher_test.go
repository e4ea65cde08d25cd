package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/tdbuild/internal/adapters/fs"
	"go.trai.ch/tdbuild/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func newTask(inputs ...string) *domain.GenerationTask {
	return &domain.GenerationTask{
		Name:        "ops_gen_op_decls_1a2b3c4d",
		Generator:   "bin/td-gen",
		PrimaryFile: "ops/ops.td",
		Options:     []string{"-gen-op-decls"},
		Includes:    []string{"ops/include"},
		Inputs:      domain.InternStrings(inputs),
		OutputPath:  "generated/ops/ops.h.inc",
	}
}

func TestHasher_ComputeInputHash_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ops/ops.td", "def Op;")
	hasher := fs.NewHasher(fs.NewWalker())

	task := newTask("ops/ops.td")
	a, err := hasher.ComputeInputHash(task, tmpDir)
	if err != nil {
		t.Fatalf("ComputeInputHash failed: %v", err)
	}
	b, err := hasher.ComputeInputHash(task, tmpDir)
	if err != nil {
		t.Fatalf("ComputeInputHash failed: %v", err)
	}
	if a != b {
		t.Errorf("expected deterministic hash, got %q and %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("expected 16-character hash, got %q", a)
	}
}

func TestHasher_ComputeInputHash_SensitiveToContent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ops/ops.td", "def Op;")
	hasher := fs.NewHasher(fs.NewWalker())
	task := newTask("ops/ops.td")

	before, err := hasher.ComputeInputHash(task, tmpDir)
	if err != nil {
		t.Fatalf("ComputeInputHash failed: %v", err)
	}

	writeFile(t, tmpDir, "ops/ops.td", "def Op; def Other;")
	after, err := hasher.ComputeInputHash(task, tmpDir)
	if err != nil {
		t.Fatalf("ComputeInputHash failed: %v", err)
	}

	if before == after {
		t.Error("hash must change when an input file changes")
	}
}

func TestHasher_ComputeInputHash_SensitiveToDefinition(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ops/ops.td", "def Op;")
	hasher := fs.NewHasher(fs.NewWalker())

	base := newTask("ops/ops.td")
	baseHash, err := hasher.ComputeInputHash(base, tmpDir)
	if err != nil {
		t.Fatalf("ComputeInputHash failed: %v", err)
	}

	changed := base.Clone()
	changed.Options = []string{"-gen-op-defs"}
	changedHash, err := hasher.ComputeInputHash(changed, tmpDir)
	if err != nil {
		t.Fatalf("ComputeInputHash failed: %v", err)
	}

	if baseHash == changedHash {
		t.Error("hash must change when generator options change")
	}
}

// Inputs produced by an earlier task in the same run may not exist yet when
// the hash is computed; they contribute by name only instead of failing.
func TestHasher_ComputeInputHash_MissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ops/ops.td", "def Op;")
	hasher := fs.NewHasher(fs.NewWalker())

	task := newTask("ops/ops.td", "generated/base/base.td")
	if _, err := hasher.ComputeInputHash(task, tmpDir); err != nil {
		t.Fatalf("expected missing input to be tolerated, got %v", err)
	}
}

func TestHasher_ComputeOutputHash(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "generated/ops/a.h.inc", "A")
	writeFile(t, tmpDir, "generated/ops/b.h.inc", "B")
	hasher := fs.NewHasher(fs.NewWalker())

	forward, err := hasher.ComputeOutputHash([]string{"generated/ops/a.h.inc", "generated/ops/b.h.inc"}, tmpDir)
	if err != nil {
		t.Fatalf("ComputeOutputHash failed: %v", err)
	}
	reversed, err := hasher.ComputeOutputHash([]string{"generated/ops/b.h.inc", "generated/ops/a.h.inc"}, tmpDir)
	if err != nil {
		t.Fatalf("ComputeOutputHash failed: %v", err)
	}
	if forward != reversed {
		t.Error("output hash must be independent of listing order")
	}

	if _, err := hasher.ComputeOutputHash([]string{"generated/ops/missing.h.inc"}, tmpDir); err == nil {
		t.Error("expected error for missing output file")
	}
}
