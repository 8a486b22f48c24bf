package clock

import "time"

// Clock is the time source for timestamps written to storage.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock { return realClock{} }

// Now returns UTC truncated to milliseconds, the precision MongoDB stores dates with.
func (realClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FixedClock returns a fixed instant that only moves on Advance. Used by tests.
type FixedClock struct {
	current time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

func (c *FixedClock) Now() time.Time { return c.current }

func (c *FixedClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
