// Package debounce delays applying a rapidly changing value until it has
// been stable for a quiescent interval.
//
// Each Trigger cancels the previously scheduled commit and schedules a new
// one. Every value carries a generation: a superseded callback whose timer
// already fired finds a newer generation and does nothing, and a commit
// that is overtaken while in flight by a newer Flush is dropped, so the
// last committed value is always the newest one.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiescent interval used when none is configured.
const DefaultDelay = 200 * time.Millisecond

// Timer is the handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc satisfies it through
// RealScheduler; tests substitute a manual scheduler.
type Scheduler func(d time.Duration, f func()) Timer

// RealScheduler schedules with time.AfterFunc.
func RealScheduler(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer commits the most recent value passed to Trigger once no new
// value has arrived for the configured delay.
//
// Thread Safety:
//   - Trigger, Flush, Pending and Stop may be called from any goroutine.
//   - The commit callback runs on the scheduler's goroutine (or the Flush
//     caller's), never while mu is held, so it may call Trigger or Pending.
//   - Commits are serialized by commitMu and never go backwards: a value is
//     committed only if its generation is newer than the last committed one.
//     The callback must not call Flush.
type Debouncer[T any] struct {
	delay    time.Duration
	schedule Scheduler
	commit   func(T)

	mu         sync.Mutex
	generation uint64
	timer      Timer
	value      T
	pending    bool
	stopped    bool

	commitMu  sync.Mutex
	committed uint64 // generation of the last applied commit, guarded by commitMu
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	schedule Scheduler
}

// WithScheduler replaces time.AfterFunc, mainly for deterministic tests.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.schedule = s }
}

// New creates a Debouncer that calls commit with the surviving value.
//
// Parameters:
//   - delay: the quiescent interval; non-positive uses DefaultDelay
//   - commit: receives each surviving value, one call at a time
//   - opts: WithScheduler to replace time.AfterFunc
func New[T any](delay time.Duration, commit func(T), opts ...Option) *Debouncer[T] {
	o := options{schedule: RealScheduler}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay:    delay,
		schedule: o.schedule,
		commit:   commit,
	}
}

// Trigger records v and (re)starts the quiescent window. Any commit that was
// scheduled for an earlier value is cancelled.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.generation++
	gen := d.generation
	d.value = v
	d.pending = true
	d.timer = d.schedule(d.delay, func() { d.fire(gen) })
}

// fire commits the value scheduled under gen unless it was superseded.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.generation || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.apply(gen, v)
}

// Flush commits the pending value immediately, if any. Reports whether a
// value was committed.
//
// Flush blocks while another commit is running, so it must not be called
// from inside the commit callback.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	gen := d.generation
	v := d.value
	d.pending = false
	d.mu.Unlock()

	return d.apply(gen, v)
}

// apply runs commit for v unless a newer generation was already committed
// or the Debouncer was stopped in the meantime.
func (d *Debouncer[T]) apply(gen uint64, v T) bool {
	d.commitMu.Lock()
	defer d.commitMu.Unlock()

	if gen <= d.committed {
		return false
	}
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return false
	}

	d.committed = gen
	d.commit(v)
	return true
}

// Pending reports whether a value is waiting for its quiescent window.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending commit and disables further triggers.
//
// Safe to call multiple times.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	d.pending = false
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
