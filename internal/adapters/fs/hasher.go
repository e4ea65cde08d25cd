package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes input and output hashes for generation tasks.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash covering the task definition and
// the content of every declared input file. The input set is the task's full
// transitive closure, so an unchanged hash means re-execution is redundant.
func (h *Hasher) ComputeInputHash(task *domain.GenerationTask, rootDir string) (string, error) {
	hasher := xxhash.New()

	h.hashTaskDefinition(task, hasher)

	for _, input := range task.Inputs {
		path := filepath.Join(rootDir, input.String())
		if err := h.hashInputPath(path, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashTaskDefinition hashes everything that shapes the generator command
// line: name, generator, options, includes, primary file, and output path.
func (h *Hasher) hashTaskDefinition(task *domain.GenerationTask, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(task.Name)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(task.Generator)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(task.PrimaryFile)
	_, _ = hasher.Write([]byte{0})

	for _, opt := range task.Options {
		_, _ = hasher.WriteString(opt)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, inc := range task.Includes {
		_, _ = hasher.WriteString(inc)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	_, _ = hasher.WriteString(task.OutputPath)
	_, _ = hasher.Write([]byte{0})
}

// hashInputPath hashes a single input. A path that does not exist yet may be
// produced by an earlier task in the same run; it contributes its name only.
func (h *Hasher) hashInputPath(path string, hasher *xxhash.Digest) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			_, _ = hasher.WriteString(path)
			_, _ = hasher.Write([]byte{0, 0})
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat input"), "path", path)
	}

	if info.IsDir() {
		for filePath := range h.walker.WalkFiles(path, nil) {
			if err := h.hashFile(filePath, hasher); err != nil {
				return err
			}
		}
		return nil
	}
	return h.hashFile(path, hasher)
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

// ComputeOutputHash computes the hash of the given output files.
func (h *Hasher) ComputeOutputHash(outputs []string, rootDir string) (string, error) {
	sorted := make([]string, len(outputs))
	copy(sorted, outputs)
	sort.Strings(sorted)

	hasher := xxhash.New()

	for _, output := range sorted {
		path := filepath.Join(rootDir, output)

		hash, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}

		if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
