package sim

import "time"

// Ticker gates simulation advancement to a fixed minimum interval.
// It never sleeps: callers poll it as often as they like and it admits
// at most one tick per interval.
type Ticker struct {
	interval time.Duration
	last     time.Time
}

// NewTicker creates a ticker whose first tick is due one interval after start.
func NewTicker(interval time.Duration, start time.Time) *Ticker {
	return &Ticker{interval: interval, last: start}
}

// ShouldAdvance reports whether a tick is due at now.
// On true, now becomes the new reference point. On false nothing changes.
func (t *Ticker) ShouldAdvance(now time.Time) bool {
	if now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}

// Last returns the time of the most recent admitted tick (or the start time).
func (t *Ticker) Last() time.Time {
	return t.last
}

// Interval returns the configured minimum interval between ticks.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}
