// Package clock provides an injectable time source so staleness comparisons
// and timestamps are deterministic in tests.
// This is part of the platform layer and contains no business logic.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock that returns a settable instant, for tests.
type Fixed struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (f *Fixed) Now() time.Time { return f.Instant }

// Advance moves the fixed instant forward by d.
func (f *Fixed) Advance(d time.Duration) { f.Instant = f.Instant.Add(d) }
