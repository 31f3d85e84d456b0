package embox

import "fmt"

// BindError indicates the listener could not bind its address. Without a
// bound listener pushed results are undeliverable, so callers treat it as fatal.
type BindError struct {
	Addr  string
	Cause error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("embox cannot listen on %s: %v", e.Addr, e.Cause)
}

func (e *BindError) Unwrap() error {
	return e.Cause
}
