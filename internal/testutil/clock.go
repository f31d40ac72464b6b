// Package testutil provides deterministic test doubles shared across the
// planner's test suites.
package testutil

import (
	"sync"
	"time"
)

// Epoch is the fixed instant fake clocks start at. The concrete value is
// arbitrary; tests only ever observe differences.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a manually advanced wall clock implementing engine.Clock.
// Time only moves when a test calls Advance, so deadline behavior can be
// exercised without sleeping.
//
// Thread-safety: all methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock frozen at Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: Epoch}
}

// Now returns the current fake instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AutoClock is a wall clock that steps forward a fixed amount on every Now
// call. Useful for forcing a search to hit its deadline after a known
// number of loop iterations.
type AutoClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewAutoClock creates a clock at Epoch that advances by step per Now call.
func NewAutoClock(step time.Duration) *AutoClock {
	return &AutoClock{now: Epoch, step: step}
}

// Now returns the current instant, then advances the clock by the step.
func (c *AutoClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}
