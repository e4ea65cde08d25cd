// Package scheduler executes generation tasks over the build graph implied
// by their declared input and output sets.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCached indicates the task was skipped because its inputs were
	// unchanged since the recorded run.
	StatusCached TaskStatus = "Cached"
)

// Scheduler runs generation tasks with bounded parallelism. A task becomes
// ready once every task producing one of its inputs has completed; tasks
// with no such producers are independent and failures do not propagate
// between them.
type Scheduler struct {
	invoker   ports.Invoker
	hasher    ports.Hasher
	store     ports.RecordStore
	telemetry ports.Telemetry

	mu         sync.RWMutex
	taskStatus map[string]TaskStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	invoker ports.Invoker,
	hasher ports.Hasher,
	store ports.RecordStore,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		invoker:    invoker,
		hasher:     hasher,
		store:      store,
		telemetry:  telemetry,
		taskStatus: make(map[string]TaskStatus),
	}
}

// Status reports the last observed status of a task.
func (s *Scheduler) Status(name string) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[name]
}

func (s *Scheduler) updateStatus(name string, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// Run executes the tasks with the specified parallelism, rooted at rootDir.
// Failed tasks are reported joined together; tasks that consume a failed
// task's output are left pending, while unrelated tasks run to completion.
func (s *Scheduler) Run(ctx context.Context, rootDir string, tasks []*domain.GenerationTask, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}
	state := s.newRunState(ctx, rootDir, tasks, parallelism)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

type result struct {
	task string
	err  error
}

type runState struct {
	tasks       map[string]*domain.GenerationTask
	inDegree    map[string]int
	dependents  map[string][]string
	ready       []string
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	rootDir     string
	parallelism int
	s           *Scheduler
}

// newRunState wires the task graph: task B depends on task A when one of B's
// declared inputs is A's output path.
func (s *Scheduler) newRunState(ctx context.Context, rootDir string, tasks []*domain.GenerationTask, parallelism int) *runState {
	byName := make(map[string]*domain.GenerationTask, len(tasks))
	producers := make(map[string]string, len(tasks))
	for _, t := range tasks {
		byName[t.Name] = t
		producers[t.OutputPath] = t.Name
		s.updateStatus(t.Name, StatusPending)
	}

	inDegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string)
	for _, t := range tasks {
		inDegree[t.Name] = 0
		for _, input := range t.Inputs {
			if producer, ok := producers[input.String()]; ok && producer != t.Name {
				inDegree[t.Name]++
				dependents[producer] = append(dependents[producer], t.Name)
			}
		}
	}

	var ready []string
	for _, t := range tasks {
		if inDegree[t.Name] == 0 {
			ready = append(ready, t.Name)
		}
	}

	return &runState{
		tasks:       byName,
		inDegree:    inDegree,
		dependents:  dependents,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		rootDir:     rootDir,
		parallelism: parallelism,
		s:           s,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(name, StatusRunning)

		go func(t *domain.GenerationTask) {
			state.resultsCh <- result{task: t.Name, err: state.executeTask(state.ctx, t)}
		}(state.tasks[name])
	}
}

// executeTask runs one task behind the record store: unchanged inputs skip
// execution, anything else invokes the generator and records the result.
func (state *runState) executeTask(ctx context.Context, task *domain.GenerationTask) error {
	inputHash, err := state.s.hasher.ComputeInputHash(task, state.rootDir)
	if err != nil {
		return err
	}

	ctx, vertex := state.s.telemetry.Record(ctx, task.Name)

	if state.checkCacheHit(task, inputHash) {
		vertex.Cached()
		return nil
	}

	_, err = state.s.invoker.Invoke(ctx, task)
	vertex.Complete(err)
	if err != nil {
		return err
	}

	return state.record(task, inputHash)
}

func (state *runState) checkCacheHit(task *domain.GenerationTask, inputHash string) bool {
	record, err := state.s.store.Get(task.Name)
	if err == nil && record != nil && record.InputHash == inputHash {
		state.s.updateStatus(task.Name, StatusCached)
		return true
	}
	return false
}

func (state *runState) record(task *domain.GenerationTask, inputHash string) error {
	outputHash, err := state.s.hasher.ComputeOutputHash([]string{task.OutputPath}, state.rootDir)
	if err != nil {
		return err
	}

	return state.s.store.Put(domain.GenerationRecord{
		TaskName:   task.Name,
		InputHash:  inputHash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	})
}

func (state *runState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrapped := zerr.With(zerr.Wrap(res.err, "task execution failed"), "task", res.task)
		state.errs = errors.Join(state.errs, wrapped)
		state.s.updateStatus(res.task, StatusFailed)
		return
	}

	if state.s.Status(res.task) != StatusCached {
		state.s.updateStatus(res.task, StatusCompleted)
	}
	for _, dep := range state.dependents[res.task] {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
