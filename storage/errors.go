package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no term exists for a URI.
	ErrNotFound = errors.New("term not found")

	// ErrInvalidTerm is returned when a term fails basic validation,
	// such as an empty URI.
	ErrInvalidTerm = errors.New("invalid term")
)
