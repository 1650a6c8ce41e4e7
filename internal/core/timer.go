// Package core holds the small scheduling helpers shared by the loops.
package core

import "time"

// Interval paces a loop at a fixed period. A caller that falls behind skips
// the missed ticks instead of bursting to catch up.
type Interval struct {
	period time.Duration
	next   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewInterval returns an Interval whose first Wait returns immediately.
func NewInterval(period time.Duration) *Interval {
	return &Interval{period: period, now: time.Now, sleep: time.Sleep}
}

// Period returns the current tick period.
func (i *Interval) Period() time.Duration { return i.period }

// SetPeriod changes the period. The next tick stays where it was scheduled.
func (i *Interval) SetPeriod(period time.Duration) {
	i.period = period
}

// Reset forgets the schedule so the next Wait returns immediately.
func (i *Interval) Reset() { i.next = time.Time{} }

// Wait blocks until the next tick boundary. A non-positive period never
// blocks.
func (i *Interval) Wait() {
	if i.period <= 0 {
		return
	}
	now := i.now()
	if i.next.IsZero() {
		i.next = now
	}
	if now.Before(i.next) {
		i.sleep(i.next.Sub(now))
		now = i.next
	}
	missed := now.Sub(i.next) / i.period
	i.next = i.next.Add((missed + 1) * i.period)
}
