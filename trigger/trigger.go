// Package trigger provides the trigger-signal capability used to mark
// stimulus events on the recording: a recording mock, a structured-log
// sink, a throttle wrapper modelling hardware minimum inter-signal
// delays, and a NATS publisher.
package trigger

import (
	"errors"
	"fmt"
)

// ErrCodeOutOfRange reports a trigger code outside [0, 255].
var ErrCodeOutOfRange = errors.New("trigger: code out of range")

// Trigger emits one event code on the trigger channel.
type Trigger interface {
	Signal(code int) error
}

// validateCode checks that code fits the 8-bit trigger bus.
func validateCode(code int) error {
	if code < 0 || 255 < code {
		return fmt.Errorf("%w: %d", ErrCodeOutOfRange, code)
	}

	return nil
}
