package debounce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period after the last trigger before the callback runs.
const DefaultInterval = 1000 * time.Millisecond

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran or was stopped.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns a Clock backed by time.AfterFunc.
func SystemClock() Clock {
	return systemClock{}
}

// State is the debouncer's position in its Idle/Pending cycle.
type State int

const (
	// Idle means no callback is scheduled.
	Idle State = iota
	// Pending means a callback is armed and waiting for the quiet period to elapse.
	Pending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Debouncer coalesces bursts of triggers into a single callback per quiet period.
// At most one timer is outstanding at any time.
type Debouncer struct {
	interval time.Duration
	clock    Clock

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	stopped bool
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(d *Debouncer) {
		d.clock = c
	}
}

// New creates a Debouncer with the given quiet interval. A non-positive interval uses
// DefaultInterval.
func New(interval time.Duration, opts ...Option) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d := &Debouncer{
		interval: interval,
		clock:    SystemClock(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger cancels any pending callback and schedules fn to run after the quiet interval.
// Triggers after Stop are ignored.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	// A timer that fires while being replaced still sees a newer generation and does nothing.
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.interval, func() {
		d.fire(gen, fn)
	})
}

func (d *Debouncer) fire(gen uint64, fn func()) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Cancel drops the pending callback, if any, without stopping the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Stop cancels the pending callback and disables the debouncer. It is safe to call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.stopped = true
}

// State reports whether a callback is pending.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		return Pending
	}
	return Idle
}
