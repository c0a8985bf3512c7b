package room

import "time"

// Clock supplies the delta-time measurements for the tick loop. Injected so
// tests can drive simulated time instead of waiting on the wall clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func RealClock() Clock { return realClock{} }
