package devices

import "time"

// SystemClock is a Clock backed by the host's monotonic wall clock,
// reported in milliseconds since the clock was created, matching the
// unit CheckedAdd's Milliseconds deadlines are expressed in. It never
// fails.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a SystemClock whose epoch is the call time.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now implements Clock.
func (c *SystemClock) Now() (Instant, error) {
	return Instant(time.Since(c.start).Milliseconds()), nil
}
