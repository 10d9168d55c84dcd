package player

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Clock issues timers and reports the current time. The playback loop
// only waits through this interface, so the same state machine runs on
// real timers in production and a stepped fake in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewClock returns the system clock.
func NewClock() Clock { return realClock{} }
