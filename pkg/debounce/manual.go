package debounce

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Manual is a Scheduler whose callbacks run only when Advance is called.
// It lets tests drive the quiescent window without sleeping.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTimer
}

type manualTimer struct {
	owner   *Manual
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. Reports whether it was still scheduled.
func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{owner: m, due: m.now + d, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves virtual time forward by d and runs every callback that
// became due, in due order. Callbacks run without the scheduler lock held.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTimer
	remaining := m.tasks[:0]
	for _, t := range m.tasks {
		switch {
		case t.stopped:
		case t.due <= m.now:
			t.fired = true
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	m.tasks = remaining
	m.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *manualTimer) int { return cmp.Compare(a.due, b.due) })
	for _, t := range due {
		t.f()
	}
}

// Scheduled returns how many timers are waiting to fire.
func (m *Manual) Scheduled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// FireStale runs the callback of every stopped-but-unfired timer, as if
// each Stop had lost a race with the timer goroutine.
func (m *Manual) FireStale() {
	m.mu.Lock()
	var stale []*manualTimer
	for _, t := range m.tasks {
		if t.stopped && !t.fired {
			t.fired = true
			stale = append(stale, t)
		}
	}
	m.mu.Unlock()

	for _, t := range stale {
		t.f()
	}
}
