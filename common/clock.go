package common

import "time"

// DefaultStep is the simulated time quantum of one update.
const DefaultStep = 10 * time.Millisecond

// Clock reports the simulated time elapsed since the simulation started.
type Clock interface {
	Now() time.Duration
}

// StepClock is a monotonic simulated clock advanced in fixed quanta.
// It keeps running while the game is suspended: suspended objects shift
// their own dates on resume instead.
type StepClock struct {
	now  time.Duration
	step time.Duration
}

// NewStepClock creates a clock advancing by step on each Step call.
func NewStepClock(step time.Duration) *StepClock {
	if step <= 0 {
		step = DefaultStep
	}
	return &StepClock{step: step}
}

// Now returns the current simulated date.
func (c *StepClock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Step advances the clock by one quantum and returns the new date.
func (c *StepClock) Step() time.Duration {
	c.now += c.step
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *StepClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.now += d
}

// StepSize returns the quantum.
func (c *StepClock) StepSize() time.Duration {
	return c.step
}

// Suspension tracks when an object was suspended so dates can be shifted by
// the suspended duration on resume.
type Suspension struct {
	suspended bool
	since     time.Duration
}

// Set changes the suspended flag. On resume it returns the duration the
// object spent suspended. changed is false when the flag already had that
// value, in which case shift is zero.
func (s *Suspension) Set(suspended bool, now time.Duration) (shift time.Duration, changed bool) {
	if s.suspended == suspended {
		return 0, false
	}
	s.suspended = suspended
	if suspended {
		s.since = now
		return 0, true
	}
	shift = now - s.since
	if shift < 0 {
		shift = 0
	}
	s.since = 0
	return shift, true
}

// Suspended reports whether the object is currently suspended.
func (s *Suspension) Suspended() bool {
	return s.suspended
}

// Since returns the date the current suspension started.
func (s *Suspension) Since() time.Duration {
	return s.since
}
