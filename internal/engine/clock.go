package engine

import "time"

// Clock supplies wall-clock readings for the search deadline. Injected so
// tests can drive deadline expiry deterministically instead of sleeping;
// see testutil for fake implementations.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
