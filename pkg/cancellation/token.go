// Package cancellation provides the single-fire shutdown signal shared by
// the recording driver and its workers.
package cancellation

import (
	"sync"
	"time"
)

// Token latches once from armed to fired. Every observer sees the fire,
// including ones that start waiting after it happened.
type Token struct {
	once sync.Once
	done chan struct{}
}

// New returns an armed token.
func New() *Token {
	return &Token{done: make(chan struct{})}
}

// Fire marks the token as fired. Calls after the first are no-ops.
func (t *Token) Fire() {
	t.once.Do(func() { close(t.done) })
}

// Fired reports whether Fire has been called, without blocking.
func (t *Token) Fired() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the token fires.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// WaitFor blocks until the token fires or d elapses, whichever comes first.
// It returns true if the token fired. A non-positive d polls.
func (t *Token) WaitFor(d time.Duration) bool {
	if d <= 0 {
		return t.Fired()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-t.done:
		return true
	case <-timer.C:
		return false
	}
}
