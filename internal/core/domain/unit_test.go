package domain_test

import (
	"testing"

	"go.trai.ch/tdbuild/internal/core/domain"
)

func TestParseIncludePath(t *testing.T) {
	rel := domain.ParseIncludePath("include")
	if rel.Kind != domain.IncludeRelative || rel.Raw != "include" {
		t.Errorf("expected relative include, got %+v", rel)
	}

	abs := domain.ParseIncludePath("//third_party/include")
	if abs.Kind != domain.IncludeAbsolute || abs.Raw != "third_party/include" {
		t.Errorf("expected absolute include, got %+v", abs)
	}
}

func TestIncludePath_Logical(t *testing.T) {
	cases := []struct {
		raw  string
		pkg  string
		want string
	}{
		{"include", "dialects/ops", "dialects/ops/include"},
		{".", "dialects/ops", "dialects/ops"},
		{"//third_party/include", "dialects/ops", "third_party/include"},
		{"//./include", "dialects/ops", "include"},
	}
	for _, tc := range cases {
		got := domain.ParseIncludePath(tc.raw).Logical(tc.pkg)
		if got != tc.want {
			t.Errorf("Logical(%q, %q) = %q, want %q", tc.raw, tc.pkg, got, tc.want)
		}
	}
}
