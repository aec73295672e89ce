// Package timeutil provides the clock used for default ticketing dates and the
// calendar helpers shared by date checks.
package timeutil

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Tests and replays of past
// transactions use it to pin the ticketing date.
type FixedClock struct {
	at time.Time
}

// NewFixedClock creates a clock stopped at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{at: t}
}

// Now returns the fixed instant.
func (c *FixedClock) Now() time.Time {
	return c.at
}

// Today returns the clock's current calendar date.
func Today(c Clock) time.Time {
	return DateOnly(c.Now())
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*FixedClock)(nil)
)
