package service

import "time"

// Clock supplies the current time to services so tests can pin it.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() Clock { return time.Now }
