package api

import (
	"fmt"
	"net/http"

	"github.com/mnajar/platebook/internal/domain"
)

// RemoteError means the server responded with a non-success status.
// Message comes from the response body's "message" field when present,
// otherwise a fixed per-operation fallback.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto the domain sentinels so callers
// can use errors.Is without inspecting status codes.
func (e *RemoteError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// NetworkError means the request never produced a response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not reach server at %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
