package swipe

import "time"

// Clock abstracts time.Now() to allow deterministic testing of the carousel
// countdown and the gesture end-event debounce.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
