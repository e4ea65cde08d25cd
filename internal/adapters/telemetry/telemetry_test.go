package telemetry_test

import (
	"context"
	"io"
	"testing"

	"go.trai.ch/tdbuild/internal/adapters/telemetry"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

func TestNoOp(t *testing.T) {
	noop := telemetry.NewNoOp()

	ctx, vertex := noop.Record(context.Background(), "ops_gen")
	if vertex == nil {
		t.Fatal("expected a vertex")
	}
	if vertex.Stdout() != io.Discard || vertex.Stderr() != io.Discard {
		t.Error("expected discarding writers")
	}

	// Harmless in any order.
	vertex.Complete(nil)
	vertex.Complete(zerr.New("boom"))
	vertex.Cached()

	if got := ports.VertexFromContext(ctx); got != vertex {
		t.Error("expected the vertex to ride on the returned context")
	}

	if err := noop.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
