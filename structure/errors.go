package structure

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLastChild indicates RemoveLastChild was given a child that is not
	// the most recently appended one.
	ErrNotLastChild = errors.New("structure: last sub-structure changed")

	// ErrFrozen indicates a Builder was mutated after Build.
	ErrFrozen = errors.New("structure: builder already frozen")

	// ErrInheritorMissing indicates a node could not be found by id in the tree
	// produced by its own successful shrink.
	ErrInheritorMissing = errors.New("structure: inheritor node not found")

	// ErrInheritorShape indicates a node's counterpart after a successful child
	// shrink has a different number of children.
	ErrInheritorShape = errors.New("structure: inheritor child count changed")
)

// InvariantError reports internal-consistency corruption found while shrinking.
// It is raised with panic so that the current shrink aborts immediately;
// shrinker.Minimize recovers it and returns it as an error.
type InvariantError struct {
	Err    error
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariantf(sentinel error, format string, args ...interface{}) {
	panic(&InvariantError{Err: sentinel, Detail: fmt.Sprintf(format, args...)})
}
