package schedule

import "time"

// Clock abstracts the current time so eligibility can be evaluated in
// tests without a live clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// MockClock reports a fixed instant, e.g. "pretend it is Friday 23:59".
type MockClock struct {
	MockTime time.Time
}

func (m MockClock) Now() time.Time { return m.MockTime }
