package bond

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOpen indicates a client call before Open
	ErrNotOpen = errors.New("bond client not open")

	// ErrClosed indicates a client call after Close
	ErrClosed = errors.New("bond client closed")
)

// APIError represents a failed Bond Bridge request: either a non-2xx
// HTTP response (StatusCode and Body set) or a transport failure
// (cause set, StatusCode zero).
type APIError struct {
	StatusCode int
	Body       string
	cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("bond API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("bond API request failed: %s", e.cause)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// IsAPIError reports whether err is a bridge-side failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
