package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDateRange indicates an end date before a start date or a
	// date that could not be parsed. The edit is refused and prior state
	// is left untouched.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrCircularDependency indicates that accepting a dependency edge
	// would close a cycle in the project's dependency graph.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrCrossProjectDependency indicates predecessor and successor live
	// in different projects.
	ErrCrossProjectDependency = errors.New("cross-project dependency")

	// ErrEntityNotFound indicates the referenced phase or subphase does
	// not exist in the project tree.
	ErrEntityNotFound = errors.New("entity not found")
)

// InvalidDateRangeError wraps ErrInvalidDateRange with the offending values.
type InvalidDateRangeError struct {
	Start string
	End   string
	Cause string
}

func (e *InvalidDateRangeError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("invalid date range %s..%s: %s", e.Start, e.End, e.Cause)
	}
	return fmt.Sprintf("invalid date range %s..%s", e.Start, e.End)
}

func (e *InvalidDateRangeError) Unwrap() error { return ErrInvalidDateRange }

// CircularDependencyError reports the edge that would have closed a cycle.
type CircularDependencyError struct {
	PredecessorID string
	SuccessorID   string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("dependency %s -> %s would create a cycle", e.PredecessorID, e.SuccessorID)
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// CrossProjectDependencyError reports an edge whose endpoints belong to
// different projects.
type CrossProjectDependencyError struct {
	PredecessorID        string
	SuccessorID          string
	PredecessorProjectID string
	SuccessorProjectID   string
}

func (e *CrossProjectDependencyError) Error() string {
	return fmt.Sprintf("dependency %s -> %s crosses projects (%s, %s)",
		e.PredecessorID, e.SuccessorID, e.PredecessorProjectID, e.SuccessorProjectID)
}

func (e *CrossProjectDependencyError) Unwrap() error { return ErrCrossProjectDependency }
