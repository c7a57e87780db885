package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors covering the solver's error taxonomy (spec §7) plus the
// handful of generic cases the ambient stack still needs.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")

	// ErrLoad covers dangling foreign keys, malformed preference strings, or
	// missing required fields encountered while building a Problem Instance.
	ErrLoad = New("SOLVE_LOAD_ERROR", http.StatusUnprocessableEntity, "catalog load failed")

	// ErrDomainTooSmall is raised pre-solve when a requirement's domain has
	// fewer cells than its required hours.
	ErrDomainTooSmall = New("SOLVE_DOMAIN_TOO_SMALL", http.StatusUnprocessableEntity, "requirement domain too small")

	// ErrInfeasible collapses Unsat and Timeout into one caller-visible
	// failure. Callers who need the distinction use errors.Is against the
	// wrapped solver.ErrUnsat / solver.ErrTimeout, or inspect
	// solver.Result.Outcome directly.
	ErrInfeasible = New("SOLVE_INFEASIBLE", http.StatusConflict, "no satisfying schedule found")

	// ErrWrite covers a failed atomic replace transaction; the previous
	// schedule is guaranteed intact when this is returned.
	ErrWrite = New("SOLVE_WRITE_ERROR", http.StatusInternalServerError, "schedule write failed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
