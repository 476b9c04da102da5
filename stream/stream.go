package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSource reports that no sample source could be discovered.
	ErrNoSource = errors.New("stream: no source found")
	// ErrChannelNotFound reports a channel name absent from a source.
	ErrChannelNotFound = errors.New("stream: channel not found")
)

// Source yields newly arrived timestamped samples. Implementations must
// make Pull non-blocking: when nothing arrived since the previous call
// it returns empty slices.
type Source interface {
	// SampleRate returns the nominal sampling rate in Hz.
	SampleRate() float64
	// ChannelNames returns the channel labels, in channel order.
	ChannelNames() []string
	// Pull returns the timestamps of the newly arrived samples and one
	// value slice per channel, each aligned with the timestamps.
	Pull() (ts []float64, data [][]float64)
}

// ChannelIndex returns the index of the named channel in src.
func ChannelIndex(src Source, name string) (int, error) {
	for i, ch := range src.ChannelNames() {
		if ch == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q not in %v", ErrChannelNotFound, name, src.ChannelNames())
}
