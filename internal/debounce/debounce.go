// Package debounce delays a callback until its input has been quiet for a
// fixed window.
package debounce

import (
	"sync"
	"time"
)

// Debouncer invokes fn with the last value passed to Trigger once no further
// Trigger call has happened for the configured delay.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	// exec serialises callback invocations so Stop can wait for one in progress
	exec sync.Mutex

	mu         sync.Mutex
	timer      *time.Timer
	pending    T
	hasPending bool
	gen        uint64
	stopped    bool
}

// New creates a Debouncer. fn runs on the timer's goroutine and must not call Stop.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger records v and restarts the quiescence window
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.hasPending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs a pending call right away instead of waiting for the window
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.mu.Unlock()
	d.fire(gen)
}

// Pending reports whether a call is waiting for the window to elapse
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending && !d.stopped
}

// SetDelay changes the window for subsequent Trigger calls
func (d *Debouncer[T]) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// Stop drops any pending call and releases the timer. Once Stop returns, fn
// is not running and will never be invoked again.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.hasPending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
	d.mu.Unlock()

	d.exec.Lock()
	d.exec.Unlock()
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.exec.Lock()
	defer d.exec.Unlock()

	d.mu.Lock()
	if d.stopped || gen != d.gen || !d.hasPending {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.hasPending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}
