package threatlist

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the service cannot be reached.
	ErrUnavailable = errors.New("threat list service unavailable")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed threat list response")
)

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("threat list service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("threat list service returned status %d: %s", e.StatusCode, e.Body)
}
