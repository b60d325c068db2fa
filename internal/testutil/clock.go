package testutil

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced clock. It satisfies quiz.Clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock starts a FakeClock at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the fake time forward and returns the new time.
func (c *FakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// AdvanceSeconds moves the fake time forward by whole seconds, the unit of
// question and total durations.
func (c *FakeClock) AdvanceSeconds(seconds int) time.Time {
	return c.Advance(time.Duration(seconds) * time.Second)
}
