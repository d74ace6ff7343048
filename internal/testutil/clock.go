package testutil

import (
	"sync"
	"time"
)

// FakeClock is a deterministic time source. Each reading returns the current
// instant and then moves it forward by the configured step.
type FakeClock struct {
	mu   sync.Mutex
	at   time.Time
	step time.Duration
}

// NewFakeClock returns a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return NewSteppingClock(start, 0)
}

// NewSteppingClock returns a clock that advances by step after every Now.
func NewSteppingClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{at: start, step: step}
}

// Now reports the current instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	at := c.at
	c.at = at.Add(c.step)
	return at
}

// Advance moves the clock forward by d without a reading.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.at = c.at.Add(d)
	c.mu.Unlock()
}
