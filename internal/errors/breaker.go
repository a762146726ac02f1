package errors

import (
	"time"
)

// BreakerState represents the error breaker state.
type BreakerState int

const (
	// StateNormal is the working state where errors accumulate.
	StateNormal BreakerState = iota
	// StateTripped is terminal: too many errors landed inside one window.
	StateTripped
)

// String returns a string representation of the state.
func (s BreakerState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateTripped:
		return "tripped"
	default:
		return "unknown"
	}
}

// DefaultErrorLimit is the number of errors inside one window that trips
// the breaker.
const DefaultErrorLimit = 20

// DefaultErrorWindow is the duration of the sliding error window.
const DefaultErrorWindow = 5 * time.Second

// Breaker is a sliding-window error-rate guard for the watch loop.
// It distinguishes a transient cluster of errors from a sustained failure
// storm: errors accumulate in a window, and only a full window's worth of
// errors inside the window duration trips it. Sparse errors are forgiven
// each time the window expires.
//
// A Breaker is owned by a single watch loop and is not safe for concurrent
// use; the loop records failures and evaluates once per iteration.
type Breaker struct {
	limit  int
	window time.Duration

	count int
	since time.Time
	state BreakerState
}

// BreakerOption configures a Breaker.
type BreakerOption func(*Breaker)

// WithLimit sets the number of errors inside one window that trips the breaker.
func WithLimit(n int) BreakerOption {
	return func(b *Breaker) {
		b.limit = n
	}
}

// WithWindow sets the window duration.
func WithWindow(d time.Duration) BreakerOption {
	return func(b *Breaker) {
		b.window = d
	}
}

// NewBreaker creates a breaker with the given options.
// Default: 20 errors per 5 second window.
func NewBreaker(opts ...BreakerOption) *Breaker {
	b := &Breaker{
		limit:  DefaultErrorLimit,
		window: DefaultErrorWindow,
		state:  StateNormal,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.since = time.Now()
	return b
}

// State returns the current state without advancing the window.
func (b *Breaker) State() BreakerState {
	return b.state
}

// Count returns the error count accumulated in the current window.
func (b *Breaker) Count() int {
	return b.count
}

// RecordFailure adds one error to the current window.
func (b *Breaker) RecordFailure() {
	b.count++
}

// Evaluate applies the window rule and returns the resulting state.
// Call once per loop iteration. If the window has expired the count is
// reset and the window restarts at the current time; the reset takes
// priority over tripping and happens whether or not an error was just
// recorded. Otherwise, a count at or past the limit trips the breaker.
// Tripped is terminal.
func (b *Breaker) Evaluate() BreakerState {
	if b.state == StateTripped {
		return StateTripped
	}

	if time.Since(b.since) > b.window {
		b.count = 0
		b.since = time.Now()
		return StateNormal
	}

	if b.count >= b.limit {
		b.state = StateTripped
	}
	return b.state
}
