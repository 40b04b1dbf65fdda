package common

import "time"

// Countdown is an absolute target date on the simulated clock.
//
// While suspended the remaining time is frozen; on resume the date moves
// forward by exactly the suspended duration.
type Countdown struct {
	date  time.Duration
	armed bool
	pause Suspension
}

// Start arms the countdown to expire d after now. Started while suspended,
// it counts from the resume.
func (c *Countdown) Start(now, d time.Duration) {
	if c.pause.Suspended() {
		now = c.pause.Since()
	}
	c.StartAt(now + d)
}

// StartAt arms the countdown with an absolute date.
func (c *Countdown) StartAt(date time.Duration) {
	c.date = date
	c.armed = true
}

// Stop disarms the countdown.
func (c *Countdown) Stop() {
	c.armed = false
}

// Armed reports whether a date is set.
func (c *Countdown) Armed() bool {
	return c.armed
}

// Date returns the absolute target date.
func (c *Countdown) Date() time.Duration {
	return c.date
}

// Extend pushes the date forward by d, typically to rearm a periodic event
// without accumulating drift.
func (c *Countdown) Extend(d time.Duration) {
	c.date += d
	c.armed = true
}

// Remaining returns the time left until the date. While suspended it
// measures from the moment the suspension began.
func (c *Countdown) Remaining(now time.Duration) time.Duration {
	if !c.armed {
		return 0
	}
	if c.pause.Suspended() {
		now = c.pause.Since()
	}
	if left := c.date - now; left > 0 {
		return left
	}
	return 0
}

// Expired reports whether the date is reached. A suspended countdown never
// expires.
func (c *Countdown) Expired(now time.Duration) bool {
	return c.armed && !c.pause.Suspended() && now >= c.date
}

// Suspended reports whether the countdown is frozen.
func (c *Countdown) Suspended() bool {
	return c.pause.Suspended()
}

// SetSuspended freezes or unfreezes the countdown.
func (c *Countdown) SetSuspended(suspended bool, now time.Duration) {
	shift, changed := c.pause.Set(suspended, now)
	if changed && !suspended && c.armed {
		c.date += shift
	}
}
