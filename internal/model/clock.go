package model

import "time"

// Clock supplies the current time. Injected so expiry logic is
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
