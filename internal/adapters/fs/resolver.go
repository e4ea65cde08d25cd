package fs

import (
	"path/filepath"

	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements ports.InputResolver using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands the given patterns against root. Pattern order is
// preserved (declaration order feeds resolution order downstream); matches
// within one pattern come back in Glob's sorted order. A pattern with no
// matches is an error: a manifest naming a missing file is misdeclared.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		path := filepath.Join(root, pattern)

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob pattern"), "pattern", path)
		}
		if len(matches) == 0 {
			return nil, zerr.With(zerr.New("input not found"), "pattern", path)
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	return result, nil
}
