package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of generation tasks.
type Telemetry interface {
	// Record starts recording a vertex for the named task. The returned
	// context carries the vertex for the invoker to stream output into.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded task.
type Vertex interface {
	// Stdout returns a writer capturing the task's standard output.
	Stdout() io.Writer
	// Stderr returns a writer capturing the task's error output.
	Stderr() io.Writer
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as skipped because its inputs were unchanged.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, or nil.
func VertexFromContext(ctx context.Context) Vertex {
	v, _ := ctx.Value(vertexKey{}).(Vertex)
	return v
}
