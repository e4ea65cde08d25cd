package domain_test

import (
	"reflect"
	"testing"

	"go.trai.ch/tdbuild/internal/core/domain"
)

func planFixture(t *testing.T, g *domain.Group) *domain.Plan {
	t.Helper()
	r := domain.NewRegistry()
	declareUnit(t, r, "base_def", "base", []string{"base/base.td"}, []string{"include"}, nil)
	snap := r.Snapshot()
	layout := domain.NewLayout("")

	plan, err := domain.PlanGroup(snap, layout, g, func(name domain.InternedString) (*domain.ResolvedView, error) {
		return snap.Resolve(name, layout)
	})
	if err != nil {
		t.Fatalf("failed to plan group: %v", err)
	}
	return plan
}

func TestPlanGroup(t *testing.T) {
	plan := planFixture(t, &domain.Group{
		Name:        "ops",
		Package:     domain.NewInternedString("dialects/ops"),
		Generator:   "bin/td-gen",
		PrimaryFile: domain.NewInternedString("dialects/ops/ops.td"),
		ExtraFiles:  domain.InternStrings([]string{"dialects/ops/traits.td"}),
		Includes:    domain.ParseIncludePaths([]string{"include"}),
		Deps:        domain.InternStrings([]string{"base_def"}),
		Targets: []domain.TargetSpec{
			{Opts: "-gen-op-decls", Out: "ops.h.inc"},
			{Opts: "-gen-op-defs", Out: "ops.cpp.inc"},
		},
	})

	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(plan.Tasks))
	}

	task := plan.Tasks[0]
	if task.Generator != "bin/td-gen" || task.PrimaryFile != "dialects/ops/ops.td" {
		t.Errorf("unexpected task identity: %+v", task)
	}
	if task.OutputPath != "generated/dialects/ops/ops.h.inc" {
		t.Errorf("output must land in the generated tree under the package, got %q", task.OutputPath)
	}

	// Own includes before dependency includes, each doubled source-first.
	wantIncludes := []string{
		"dialects/ops/include",
		"generated/dialects/ops/include",
		"base/include",
		"generated/base/include",
	}
	if !reflect.DeepEqual(task.Includes, wantIncludes) {
		t.Errorf("expected includes %v, got %v", wantIncludes, task.Includes)
	}

	wantInputs := []string{"dialects/ops/ops.td", "dialects/ops/traits.td", "base/base.td"}
	gotInputs := task.InputPaths()
	if !reflect.DeepEqual(gotInputs, wantInputs) {
		t.Errorf("expected inputs %v, got %v", wantInputs, gotInputs)
	}

	// Every task of a group carries the identical resolved context.
	if !reflect.DeepEqual(plan.Tasks[1].Includes, task.Includes) {
		t.Error("tasks of one group must share the resolved include list")
	}
	if plan.Tasks[0].Name == plan.Tasks[1].Name {
		t.Error("targets must receive distinct sub-task names")
	}

	wantHeaders := []string{"generated/dialects/ops/ops.h.inc", "generated/dialects/ops/ops.cpp.inc"}
	if !reflect.DeepEqual(plan.Unit.Headers, wantHeaders) {
		t.Errorf("expected headers %v, got %v", wantHeaders, plan.Unit.Headers)
	}
}

// Omitting a flag on the current platform changes the command line but must
// not change the sub-task name, which is derived from the declared options.
func TestPlanGroup_OmittedOptions(t *testing.T) {
	group := func(omit []string) *domain.Group {
		return &domain.Group{
			Name:        "ops",
			Package:     domain.NewInternedString("ops"),
			Generator:   "bin/td-gen",
			PrimaryFile: domain.NewInternedString("ops/ops.td"),
			Targets:     []domain.TargetSpec{{Opts: "-gen-op-decls --long-string-literals", Out: "ops.h.inc"}},
			OmitOptions: omit,
		}
	}

	full := planFixture(t, group(nil)).Tasks[0]
	omitted := planFixture(t, group([]string{"--long-string-literals"})).Tasks[0]

	if full.Name != omitted.Name {
		t.Errorf("omission must not rename the task: %q vs %q", full.Name, omitted.Name)
	}

	if want := []string{"-gen-op-decls", "--long-string-literals"}; !reflect.DeepEqual(full.Options, want) {
		t.Errorf("expected options %v, got %v", want, full.Options)
	}
	if want := []string{"-gen-op-decls"}; !reflect.DeepEqual(omitted.Options, want) {
		t.Errorf("expected omitted options %v, got %v", want, omitted.Options)
	}
}

func TestPlanGroup_DocOnlyTargetStillPlanned(t *testing.T) {
	plan := planFixture(t, &domain.Group{
		Name:        "ops",
		Package:     domain.NewInternedString("ops"),
		Generator:   "bin/td-gen",
		PrimaryFile: domain.NewInternedString("ops/ops.td"),
		Targets: []domain.TargetSpec{
			{Opts: "-gen-op-decls", Out: "ops.h.inc"},
			{Opts: "-gen-op-doc", Out: "ops.md"},
		},
		DocOnlyOpts: []string{"-gen-op-doc"},
	})

	// Doc-only targets execute like any other.
	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(plan.Tasks))
	}
	if want := []string{"generated/ops/ops.h.inc"}; !reflect.DeepEqual(plan.Unit.Headers, want) {
		t.Errorf("expected headers %v, got %v", want, plan.Unit.Headers)
	}
}
