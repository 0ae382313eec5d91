package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	// ErrUpstream marks store failures (unreachable, timeout, driver errors).
	ErrUpstream = errors.New("store unavailable")
)

// ValidationError lists every problem found in a request body.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
