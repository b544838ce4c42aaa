package service

import (
	"time"
)

// NowUTC is the clock used for note timestamps. It is truncated to
// microseconds, the finest precision every supported database keeps.
func NowUTC() time.Time {
	return time.Now().
		UTC().
		Truncate(time.Microsecond)
}
