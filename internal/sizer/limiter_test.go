package sizer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterDefaultsPermits(t *testing.T) {
	l := NewLimiter(0)

	assert.Equal(t, DefaultPermits, l.permits)
}

func TestLimiterBoundsConcurrency(t *testing.T) {
	l := NewLimiter(2)

	var (
		inFlight atomic.Int64
		maxSeen  atomic.Int64
		wg       sync.WaitGroup
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			l.Acquire()
			defer l.Release()

			cur := inFlight.Add(1)
			defer inFlight.Add(-1)

			for {
				seen := maxSeen.Load()
				if cur <= seen || maxSeen.CompareAndSwap(seen, cur) {
					break
				}
			}

			time.Sleep(10 * time.Millisecond)
		}()
	}

	wg.Wait()

	assert.LessOrEqual(t, maxSeen.Load(), int64(2))
	assert.Zero(t, inFlight.Load())
}

func TestLimiterWakesWaitersFIFO(t *testing.T) {
	l := NewLimiter(1)
	l.Acquire()

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)

	for i := 0; i < 5; i++ {
		i := i

		wg.Add(1)

		go func() {
			defer wg.Done()

			l.Acquire()

			mu.Lock()
			order = append(order, i)
			mu.Unlock()

			l.Release()
		}()

		// Wait until this goroutine is queued before starting the next,
		// so arrival order is deterministic.
		require.Eventually(t, func() bool {
			l.mu.Lock()
			defer l.mu.Unlock()

			return len(l.waiters) == i+1
		}, time.Second, time.Millisecond)
	}

	l.Release()
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestLimiterReleaseWithoutWaiters(t *testing.T) {
	l := NewLimiter(1)

	l.Acquire()
	l.Release()

	// The permit must be reusable.
	done := make(chan struct{})

	go func() {
		l.Acquire()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("permit was not returned")
	}
}
