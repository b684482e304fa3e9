package store

import "fmt"

// ValidationError reports bad input to a mutation. It never reaches the
// database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation on an id that no longer exists.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// PersistenceError wraps a backend failure during a mutation, preserving the
// original message. Local optimistic state is not rolled back; callers that
// need strict consistency should re-load.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// LoadError reports a failed initial load. Until a load succeeds the task
// set must be treated as unknown and the scheduler must not run.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load tasks: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
