package hover

import "time"

// Timer is a cancelable delayed callback.
type Timer interface {
	// Stop prevents the callback from firing. Reports whether the stop
	// happened before the timer fired.
	Stop() bool
}

// Clock abstracts timer creation so tests can drive the state machine
// with fake time.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewClock returns a Clock backed by real timers.
func NewClock() Clock {
	return realClock{}
}
