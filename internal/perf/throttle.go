package perf

import (
	"sync"
	"time"
)

// Throttler lets fn run at most once per wait window. The first call in a
// quiet period runs immediately; later calls inside the window collapse to
// the latest value, which runs when the window closes and opens the next
// window. A pending value is never silently dropped.
type Throttler[T any] struct {
	wait time.Duration
	fn   func(T)

	mu         sync.Mutex
	timer      *time.Timer
	gen        uint64
	open       bool
	pending    T
	hasPending bool
}

func Throttle[T any](wait time.Duration, fn func(T)) *Throttler[T] {
	return &Throttler[T]{wait: wait, fn: fn}
}

// Call runs fn now if no window is open, otherwise queues value as the
// trailing call.
func (t *Throttler[T]) Call(value T) {
	if t.wait <= 0 {
		t.fn(value)
		return
	}
	t.mu.Lock()
	if t.open {
		t.pending = value
		t.hasPending = true
		t.mu.Unlock()
		return
	}
	t.startWindowLocked()
	t.mu.Unlock()
	t.fn(value)
}

// Flush runs any queued trailing call now. The current window stays open.
func (t *Throttler[T]) Flush() {
	t.mu.Lock()
	if !t.hasPending {
		t.mu.Unlock()
		return
	}
	value := t.pending
	var zero T
	t.pending = zero
	t.hasPending = false
	t.mu.Unlock()
	t.fn(value)
}

// Cancel drops any queued call and closes the window.
func (t *Throttler[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.open = false
	var zero T
	t.pending = zero
	t.hasPending = false
}

// Pending reports whether a trailing call is queued.
func (t *Throttler[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasPending
}

func (t *Throttler[T]) startWindowLocked() {
	t.open = true
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(t.wait, func() { t.closeWindow(gen) })
}

func (t *Throttler[T]) closeWindow(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	if !t.hasPending {
		t.open = false
		t.timer = nil
		t.mu.Unlock()
		return
	}
	value := t.pending
	var zero T
	t.pending = zero
	t.hasPending = false
	t.startWindowLocked()
	t.mu.Unlock()
	t.fn(value)
}
