// Package clock provides an injectable time source so token expiry and
// scheduling decisions can be pinned in tests.
package clock

import "time"

// Clock yields the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }
