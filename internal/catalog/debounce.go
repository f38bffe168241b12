package catalog

import (
	"context"
	"sync"
	"time"
)

// scheduler defers a single function call. The returned cancel reports
// whether the call was stopped before it ran.
type scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func() bool)
}

// timerScheduler is the real implementation backed by time.AfterFunc.
type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// debouncer holds at most one pending write. Scheduling a new write
// cancels and replaces any pending one, so only the most recent write
// inside the window ever reaches the store.
type debouncer struct {
	delay time.Duration
	sched scheduler

	mu      sync.Mutex
	cancel  func() bool
	pending func(context.Context) error
}

func newDebouncer(delay time.Duration, sched scheduler) *debouncer {
	return &debouncer{delay: delay, sched: sched}
}

// Schedule queues a write to run after the debounce window, superseding
// any pending write. onError is invoked if the deferred write fails;
// there is no retry.
func (d *debouncer) Schedule(write func(context.Context) error, onError func(error)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.pending = write
	d.cancel = d.sched.Schedule(d.delay, func() {
		if err := d.fire(); err != nil && onError != nil {
			onError(err)
		}
	})
}

// fire runs the pending write, if still pending.
func (d *debouncer) fire() error {
	d.mu.Lock()
	write := d.pending
	d.pending = nil
	d.cancel = nil
	d.mu.Unlock()

	if write == nil {
		return nil
	}
	return write(context.Background())
}

// Pending reports whether a write is queued but not yet durable.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush cancels the timer and runs any pending write immediately.
func (d *debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	write := d.pending
	d.pending = nil
	d.mu.Unlock()

	if write == nil {
		return nil
	}
	return write(ctx)
}
