package task

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
)

// HeartRateMonitor keeps a rolling estimate of the inter-beat interval
// over the last N confirmed peak timestamps. It becomes initialized
// exactly when N beats have been recorded; queries before that fail
// with ErrNotInitialized.
type HeartRateMonitor struct {
	times []float64
	count int
}

// NewHeartRateMonitor returns a monitor over the last size beats.
func NewHeartRateMonitor(size int) (*HeartRateMonitor, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: monitor size must be at least 2: %d", ErrInvalidParameter, size)
	}

	return &HeartRateMonitor{times: make([]float64, size)}, nil
}

// AddHeartbeat records the timestamp of a confirmed peak, evicting the
// oldest one once the window is full.
func (m *HeartRateMonitor) AddHeartbeat(ts float64) {
	copy(m.times, m.times[1:])
	m.times[len(m.times)-1] = ts
	if m.count < len(m.times) {
		m.count++
	}
}

// Initialized reports whether the window holds a full set of beats.
func (m *HeartRateMonitor) Initialized() bool {
	return m.count == len(m.times)
}

// MeanDelay returns the mean inter-beat interval in seconds.
func (m *HeartRateMonitor) MeanDelay() (float64, error) {
	if !m.Initialized() {
		return 0, ErrNotInitialized
	}

	return stat.Mean(timing.Diff(m.times), nil), nil
}

// Rate returns the heart rate in beats per second.
func (m *HeartRateMonitor) Rate() (float64, error) {
	delay, err := m.MeanDelay()
	if err != nil {
		return 0, err
	}

	return 1 / delay, nil
}

// BPM returns the heart rate in beats per minute.
func (m *HeartRateMonitor) BPM() (float64, error) {
	rate, err := m.Rate()
	if err != nil {
		return 0, err
	}

	return rate * 60, nil
}
