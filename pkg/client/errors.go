package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationFailed is returned when createSession answers with a non-200 status.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrTileFetchFailed is returned when the tile endpoint answers with a non-200 status.
	ErrTileFetchFailed = errors.New("tile fetch failed")

	// ErrMissingSessionToken is returned when a 200 createSession response has no session field.
	ErrMissingSessionToken = errors.New("session token missing from response")
)

// HTTPError represents a non-200 HTTP response from the Map Tiles API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
