package apperrors

import "errors"

var (
	// ErrNotFound is returned when the requested id has no matching row.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when request parameters are rejected before querying.
	ErrValidation = errors.New("validation failed")
	// ErrDependencyFailure wraps any error coming back from the persistence layer.
	ErrDependencyFailure = errors.New("dependency failure")
)
