package ports

import "go.trai.ch/tdbuild/internal/core/domain"

// Hasher defines the interface for computing input and output hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash hashes the task definition together with the content
	// of its declared input files, rooted at rootDir.
	ComputeInputHash(task *domain.GenerationTask, rootDir string) (string, error)

	// ComputeOutputHash hashes the content of the given output files.
	ComputeOutputHash(outputs []string, rootDir string) (string, error)
}
