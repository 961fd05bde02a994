package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	// ErrNotFound means the requested recipe does not exist, or the
	// server replied successfully without the expected payload.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated means an authenticated operation was attempted
	// without a token. Raised locally, before any request is issued.
	ErrUnauthenticated = errors.New("not logged in")
)

// ValidationError reports a local input problem caught before any
// request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
