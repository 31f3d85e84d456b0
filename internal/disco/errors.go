package disco

import (
	"fmt"
	"strings"
)

// TransportError represents a query that never got an HTTP response:
// connection refused, DNS failure, timeout, cancelled context.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach disco at %s: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// StatusError represents a non-2xx response from disco
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("disco at %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("disco at %s returned %d: %s", e.URL, e.StatusCode, body)
}
