package perf

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has passed without another Call, then
// invokes it with the latest value.
type Debouncer[T any] struct {
	wait time.Duration
	fn   func(T)

	mu         sync.Mutex
	timer      *time.Timer
	gen        uint64
	pending    T
	hasPending bool
}

func Debounce[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Call records value and restarts the quiet period.
func (d *Debouncer[T]) Call(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = value
	d.hasPending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Flush invokes fn immediately with any pending value.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	value, ok := d.takeLocked()
	d.mu.Unlock()
	if ok {
		d.fn(value)
	}
}

// Cancel drops any pending value.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.takeLocked()
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	value, ok := d.takeLocked()
	d.mu.Unlock()
	if ok {
		d.fn(value)
	}
}

func (d *Debouncer[T]) takeLocked() (T, bool) {
	var zero T
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	if !d.hasPending {
		return zero, false
	}
	value := d.pending
	d.pending = zero
	d.hasPending = false
	return value, true
}
