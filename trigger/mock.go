package trigger

import (
	"sync"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
)

// Recorder is a Trigger that records every signalled code, and the
// signalling time when a clock is attached.
type Recorder struct {
	clk clock.Clock

	mu    sync.Mutex
	codes []int
	times []float64
}

// NewRecorder returns an empty Recorder. clk may be nil, in which case
// no times are recorded.
func NewRecorder(clk clock.Clock) *Recorder {
	return &Recorder{clk: clk}
}

// Signal records the code.
func (r *Recorder) Signal(code int) error {
	if err := validateCode(code); err != nil {
		return err
	}

	r.mu.Lock()
	r.codes = append(r.codes, code)
	if r.clk != nil {
		r.times = append(r.times, r.clk.Now())
	}
	r.mu.Unlock()

	return nil
}

// Codes returns the recorded codes in call order.
func (r *Recorder) Codes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, len(r.codes))
	copy(out, r.codes)

	return out
}

// Times returns the recorded signalling times in call order. Empty when
// no clock was attached.
func (r *Recorder) Times() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(r.times))
	copy(out, r.times)

	return out
}
