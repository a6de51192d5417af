package engine

import "time"

// Clock supplies frame timestamps to the loop
type Clock interface {
	Now() time.Time
}

// TimeProvider is the wall clock with monotonic readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}
