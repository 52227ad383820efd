package usecase

import "errors"

// Sentinel errors services wrap with context. The HTTP layer maps them to
// status codes, so wrapped errors must keep these in their chains.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
