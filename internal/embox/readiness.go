package embox

import "sync"

// Readiness is a one-shot notification. Signal closes Done exactly once;
// later calls are no-ops.
type Readiness struct {
	once sync.Once
	ch   chan struct{}
}

// NewReadiness returns an unsignalled Readiness.
func NewReadiness() *Readiness {
	return &Readiness{ch: make(chan struct{})}
}

// Signal fires the notification. It reports whether this call fired it.
func (r *Readiness) Signal() bool {
	fired := false
	r.once.Do(func() {
		close(r.ch)
		fired = true
	})
	return fired
}

// Done is closed once Signal has been called.
func (r *Readiness) Done() <-chan struct{} {
	return r.ch
}
