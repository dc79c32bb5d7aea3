// Package sizer performs the concurrent size pass over an existing file
// tree, bounding the expensive per-directory aggregation with a counting
// admission gate and streaming progressive per-node updates.
package sizer

import "sync"

// DefaultPermits is the default number of concurrent directory aggregations.
const DefaultPermits = 20

// Limiter is a counting semaphore whose waiters are served in FIFO order:
// Release wakes the longest-waiting caller. There is no timeout; a hung
// aggregation stalls one permit indefinitely.
type Limiter struct {
	mu      sync.Mutex
	permits int
	waiters []chan struct{}
}

// NewLimiter returns a Limiter with the given permit count, falling back to
// DefaultPermits for non-positive values.
func NewLimiter(permits int) *Limiter {
	if permits <= 0 {
		permits = DefaultPermits
	}

	return &Limiter{permits: permits}
}

// Acquire blocks until a permit is available.
func (l *Limiter) Acquire() {
	l.mu.Lock()

	if l.permits > 0 {
		l.permits--
		l.mu.Unlock()

		return
	}

	ready := make(chan struct{})
	l.waiters = append(l.waiters, ready)
	l.mu.Unlock()

	<-ready
}

// Release returns a permit. A queued waiter receives it directly, so the
// permit count never overshoots while callers are blocked.
func (l *Limiter) Release() {
	l.mu.Lock()

	if len(l.waiters) > 0 {
		ready := l.waiters[0]
		l.waiters = l.waiters[1:]
		l.mu.Unlock()

		close(ready)

		return
	}

	l.permits++
	l.mu.Unlock()
}
