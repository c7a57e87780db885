package solver

import "errors"

// ErrUnsat means the constraint set has no satisfying assignment.
// Distinguishable internally from ErrTimeout even though callers at the
// service boundary see both collapsed into one taxonomy case; see
// DESIGN.md Open Question 2.
var ErrUnsat = errors.New("solver: unsatisfiable")

// ErrTimeout means the wall-clock budget was exhausted before a satisfying
// assignment was found or exhaustion was proven.
var ErrTimeout = errors.New("solver: time budget exceeded")

// DomainTooSmallError reports a requirement whose domain has fewer cells
// than its required hours.
type DomainTooSmallError struct {
	RequirementID int64
	DomainSize    int
	Hours         int
}

func (e *DomainTooSmallError) Error() string {
	return "solver: requirement domain too small"
}
