package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time. Tests can inject a fake clock via SetClock to control
// frame timing deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = realClock{}

// SetClock replaces the animation clock. Returns the previous clock
// so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = realClock{}
	}
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

// Millis converts a duration to fractional milliseconds, the unit the
// progress wheel engine measures frame timestamps in.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
