package ports

import (
	"context"

	"go.trai.ch/tdbuild/internal/core/domain"
)

// Invoker runs the external generator for one task. One task, one process
// invocation, one result; failures are deterministic given fixed inputs and
// are never retried.
//
//go:generate go run go.uber.org/mock/mockgen -source=invoker.go -destination=mocks/mock_invoker.go -package=mocks
type Invoker interface {
	// Invoke executes the generator synchronously. A non-zero exit yields an
	// error carrying the exit code and the captured stdout/stderr.
	Invoke(ctx context.Context, task *domain.GenerationTask) (*domain.Artifact, error)

	// EmitScript renders a self-contained shell script performing the
	// equivalent invocation for later, isolated execution. The script's
	// argument list is byte-identical to the one Invoke uses.
	EmitScript(task *domain.GenerationTask) ([]byte, error)
}
