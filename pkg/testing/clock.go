package testing

import (
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu    sync.Mutex
	epoch time.Time
	now   time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &FakeClock{epoch: epoch, now: epoch}
}

// Now returns the current fake time.
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

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Millis returns the fake time elapsed since the clock's epoch in milliseconds.
func (c *FakeClock) Millis() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.now.Sub(c.epoch)) / float64(time.Millisecond)
}
