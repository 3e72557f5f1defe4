package inference

import (
	"errors"
	"fmt"
)

// HTTPError is a non-200 response from the inference endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("inference api status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// TransportError is a network-level failure reaching the endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("inference api: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Render converts an HTTP-level failure into the answer text shown to the
// user. ok is false for any other error, which callers must propagate.
func Render(err error) (text string, ok bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("Error: %d, %s", httpErr.StatusCode, httpErr.Body), true
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
