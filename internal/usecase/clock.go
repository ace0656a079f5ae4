package usecase

import "time"

// Clock returns the current instant. Each operation reads it once and uses
// that snapshot for every window it computes.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}
