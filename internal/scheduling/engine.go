// Package scheduling decides which content a display or display group is
// authorized to play at a given instant.
//
// The Engine is stateless: every call reads schedules, rules and priority
// boosts from its Store and computes the answer from that snapshot. It is
// safe for concurrent use as long as the Store is.
package scheduling

import (
	"time"
)

const (
	DefaultIntervalMinutes  = 60
	DefaultMaxTimelineSteps = 10000
)

type Engine struct {
	store    Store
	clock    func() time.Time
	location *time.Location
	maxSteps int
}

type Option func(*Engine)

// WithClock overrides the wall clock used when a caller passes a zero instant.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLocation evaluates weekday and time-of-day rules in loc instead of the
// location carried by the evaluated instant.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.location = loc }
}

// WithMaxTimelineSteps caps the number of samples a preview may take. Zero or
// less disables the cap.
func WithMaxTimelineSteps(n int) Option {
	return func(e *Engine) { e.maxSteps = n }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		clock:    time.Now,
		maxSteps: DefaultMaxTimelineSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// instant resolves the evaluation time; a zero value means "now".
func (e *Engine) instant(at time.Time) time.Time {
	if at.IsZero() {
		return e.clock()
	}
	return at
}

// wallClock is the instant as seen by rules that read the local clock.
func (e *Engine) wallClock(at time.Time) time.Time {
	if e.location != nil {
		return at.In(e.location)
	}
	return at
}
