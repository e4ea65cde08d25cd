// Package app implements the application layer for tdbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/tdbuild/internal/engine/scheduler"
	"go.trai.ch/tdbuild/internal/resolution"
	"go.trai.ch/zerr"
)

// App orchestrates loading, planning, and executing generation work.
type App struct {
	loader    ports.ConfigLoader
	scheduler *scheduler.Scheduler
	invoker   ports.Invoker
	telemetry ports.Telemetry
	logger    ports.Logger
	cache     *resolution.Cache
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	invoker ports.Invoker,
	telemetry ports.Telemetry,
	logger ports.Logger,
	cache *resolution.Cache,
) *App {
	return &App{
		loader:    loader,
		scheduler: sched,
		invoker:   invoker,
		telemetry: telemetry,
		logger:    logger,
		cache:     cache,
	}
}

// Generate plans the selected groups and runs their generation tasks. Groups
// flagged for conformance scripts get one script per task emitted alongside
// the generated outputs.
func (a *App) Generate(ctx context.Context, cwd string, groupNames []string, parallelism int) error {
	plans, err := a.plan(cwd, groupNames)
	if err != nil {
		return err
	}

	var tasks []*domain.GenerationTask
	for _, plan := range plans {
		tasks = append(tasks, plan.Tasks...)
	}
	a.logger.Info(fmt.Sprintf("planned %d tasks across %d groups", len(tasks), len(plans)))

	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}
	runErr := a.scheduler.Run(ctx, cwd, tasks, parallelism)
	if closeErr := a.telemetry.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return errors.Join(domain.ErrGenerationFailed, runErr)
	}

	for _, plan := range plans {
		if plan.Group.EmitTestScript {
			if err := a.emitPlanScripts(cwd, plan); err != nil {
				return err
			}
		}
	}
	return nil
}

// EmitScripts renders a conformance script for every task of the selected
// groups without executing anything. Scripts land in the generated tree next
// to the outputs they would produce.
func (a *App) EmitScripts(ctx context.Context, cwd string, groupNames []string) error {
	plans, err := a.plan(cwd, groupNames)
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, plan := range plans {
		g.Go(func() error {
			return a.emitPlanScripts(cwd, plan)
		})
	}
	return g.Wait()
}

// plan loads the workspace and plans each selected group against a shared
// resolution cache.
func (a *App) plan(cwd string, groupNames []string) ([]*domain.Plan, error) {
	ws, err := a.loader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	groups, err := ws.SelectGroups(groupNames)
	if err != nil {
		return nil, err
	}

	resolve := a.cache.ResolveFunc(ws.Snapshot, ws.Layout)
	plans := make([]*domain.Plan, 0, len(groups))
	for _, group := range groups {
		plan, err := domain.PlanGroup(ws.Snapshot, ws.Layout, group, resolve)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (a *App) emitPlanScripts(cwd string, plan *domain.Plan) error {
	for _, task := range plan.Tasks {
		script, err := a.invoker.EmitScript(task)
		if err != nil {
			return zerr.With(err, "task", task.Name)
		}

		path := filepath.Join(cwd, task.OutputPath+".gen.sh")
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create script directory"), "task", task.Name)
		}
		if err := os.WriteFile(path, script, domain.ScriptPerm); err != nil { //nolint:gosec // scripts are meant to be executable
			return zerr.With(zerr.Wrap(err, "failed to write script"), "task", task.Name)
		}
		a.logger.Info("wrote conformance script " + path)
	}
	return nil
}
