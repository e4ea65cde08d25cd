package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateUnit is returned when declaring a unit or file group under a
	// name that is already registered.
	ErrDuplicateUnit = zerr.New("unit already declared")

	// ErrUnknownDependency is returned when a declaration references a
	// dependency that has not been registered yet. Dependencies must be
	// declared before use; this is what keeps the registry acyclic.
	ErrUnknownDependency = zerr.New("dependency not declared")

	// ErrUnknownUnit is returned when resolution is requested for a name that
	// is not in the snapshot.
	ErrUnknownUnit = zerr.New("unit not found")

	// ErrCycleDetected is returned if resolution ever encounters a dependency
	// cycle. Declare-before-reference makes this structurally impossible, but
	// the resolver still checks.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrPathEscapesWorkspace is returned when a resolved include path points
	// outside the workspace root.
	ErrPathEscapesWorkspace = zerr.New("include path escapes workspace")

	// ErrAmbiguousTarget is returned when two generation targets in one group
	// collapse to the same sub-task name.
	ErrAmbiguousTarget = zerr.New("ambiguous generation target")

	// ErrDuplicateGroup is returned when two generation groups share a name.
	// Group names namespace sub-task names, so a duplicate would let tasks
	// from different groups collide.
	ErrDuplicateGroup = zerr.New("group already declared")

	// ErrGenerationFailed is returned when the external generator exits
	// non-zero for a task.
	ErrGenerationFailed = zerr.New("generation failed")

	// ErrNoGroupsMatched is returned when the requested group names match
	// nothing in the workspace.
	ErrNoGroupsMatched = zerr.New("no generation groups matched")
)

// withMeta decorates a sentinel with key-value metadata while keeping the
// sentinel reachable through the error chain. Attaching metadata to a
// sentinel directly would return a detached copy that errors.Is no longer
// matches, so the sentinel is chained as the cause first.
func withMeta(sentinel error, keyvals ...any) error {
	err := zerr.Wrap(sentinel, "")
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		err = zerr.With(err, key, keyvals[i+1])
	}
	return err
}
