// Package fs provides file system adapters for resolving, walking, and
// hashing declaration files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/tdbuild/internal/core/domain"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root in walk order, skipping version
// control directories and the tdbuild state directory.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skip := w.shouldSkip(d, ignores); skip != nil {
				return skip
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip returns filepath.SkipDir for directories that are never inputs,
// and applies the caller's ignore patterns to names.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) error {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj" || name == domain.TdbuildDirName) {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		matched, _ := filepath.Match(ignore, name)
		if matched {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
	}

	return nil
}
