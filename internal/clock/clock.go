// Package clock provides the time source and sleep primitive used by the
// block schedulers. Timing-sensitive code never calls the time package
// directly; it receives a Clock so tests can substitute a virtual one.
package clock

import (
	"time"
)

// Clock is a monotonic time source paired with a blocking sleep.
// Timestamps are expressed in seconds from an arbitrary origin, matching
// the timestamp unit of the sample streams.
type Clock interface {
	// Now returns the current time in seconds.
	Now() float64
	// Sleep blocks for the given number of seconds. Non-positive
	// durations return immediately.
	Sleep(seconds float64)
}

// spinWindow is the tail of every sleep spent busy-waiting instead of in
// the OS scheduler, to keep the wake-up jitter under a millisecond.
const spinWindow = 0.0005

// Real is a Clock backed by the monotonic system clock.
type Real struct {
	origin time.Time
}

// NewReal returns a Real clock with its origin set to the current time.
func NewReal() *Real {
	return &Real{origin: time.Now()}
}

// Now returns the seconds elapsed since the clock was created.
func (c *Real) Now() float64 {
	return time.Since(c.origin).Seconds()
}

// Sleep blocks for the given number of seconds. The bulk of the wait is
// handed to the OS scheduler; the final spinWindow is spent polling so
// the wake-up lands within the sub-millisecond target.
func (c *Real) Sleep(seconds float64) {
	if seconds <= 0 {
		return
	}
	target := c.Now() + seconds
	if coarse := seconds - spinWindow; coarse > 0 {
		time.Sleep(time.Duration(coarse * float64(time.Second)))
	}
	for c.Now() < target {
	}
}

// Virtual is a manually driven Clock for tests. Sleep advances the
// virtual time instead of blocking, and every sleep is recorded.
type Virtual struct {
	now   float64
	slept []float64
}

// NewVirtual returns a Virtual clock starting at the given time.
func NewVirtual(start float64) *Virtual {
	return &Virtual{now: start}
}

// Now returns the current virtual time.
func (c *Virtual) Now() float64 {
	return c.now
}

// Sleep advances the virtual time by the given number of seconds and
// records the request. Non-positive durations are ignored.
func (c *Virtual) Sleep(seconds float64) {
	if seconds <= 0 {
		return
	}
	c.now += seconds
	c.slept = append(c.slept, seconds)
}

// Advance moves the virtual time forward without recording a sleep.
func (c *Virtual) Advance(seconds float64) {
	if seconds > 0 {
		c.now += seconds
	}
}

// Slept returns the recorded sleep durations in order.
func (c *Virtual) Slept() []float64 {
	return c.slept
}
