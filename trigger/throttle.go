package trigger

import (
	"fmt"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
)

// Throttle wraps a Trigger with a minimum inter-signal delay, matching
// the behaviour of hardware trigger ports that need the line to settle
// between codes. Signals issued before the delay has elapsed are
// silently dropped: a caller-visible no-op, not an error.
type Throttle struct {
	inner Trigger
	clk   clock.Clock
	min   float64

	last  float64
	fired bool
}

// NewThrottle wraps inner with a minimum delay of min seconds between
// signals.
func NewThrottle(inner Trigger, clk clock.Clock, min float64) (*Throttle, error) {
	if min <= 0 {
		return nil, fmt.Errorf("trigger: minimum inter-signal delay must be > 0: %g", min)
	}

	return &Throttle{inner: inner, clk: clk, min: min}, nil
}

// Signal forwards the code unless the previous signal was too recent.
func (t *Throttle) Signal(code int) error {
	now := t.clk.Now()
	if t.fired && now-t.last < t.min {
		return nil
	}

	if err := t.inner.Signal(code); err != nil {
		return err
	}
	t.last = now
	t.fired = true

	return nil
}
