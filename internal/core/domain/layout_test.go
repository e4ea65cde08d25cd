package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/tdbuild/internal/core/domain"
)

func TestLayout_Paths(t *testing.T) {
	layout := domain.NewLayout("")

	if got := layout.SourcePath("ops/include"); got != "ops/include" {
		t.Errorf("expected ops/include, got %q", got)
	}
	if got := layout.GeneratedPath("ops/include"); got != "generated/ops/include" {
		t.Errorf("expected generated/ops/include, got %q", got)
	}

	custom := domain.NewLayout("out/gen")
	if got := custom.GeneratedPath("ops/ops.h.inc"); got != "out/gen/ops/ops.h.inc" {
		t.Errorf("expected out/gen/ops/ops.h.inc, got %q", got)
	}
}

func TestCheckWithinWorkspace(t *testing.T) {
	for _, rel := range []string{"ops/include", "include", ".", "a/../b"} {
		if err := domain.CheckWithinWorkspace(rel); err != nil {
			t.Errorf("expected %q to stay within the workspace, got %v", rel, err)
		}
	}
	for _, rel := range []string{"..", "../outside", "a/../../outside", "/abs/path"} {
		err := domain.CheckWithinWorkspace(rel)
		if !errors.Is(err, domain.ErrPathEscapesWorkspace) {
			t.Errorf("expected %q to escape the workspace, got %v", rel, err)
		}
	}
}
