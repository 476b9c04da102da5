package audio

import "sync"

// Recorder is a Player that records the requested playback delays
// instead of producing sound.
type Recorder struct {
	mu     sync.Mutex
	delays []float64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Play records the requested delay.
func (r *Recorder) Play(in float64) {
	r.mu.Lock()
	r.delays = append(r.delays, in)
	r.mu.Unlock()
}

// Scheduled returns the recorded delays in call order.
func (r *Recorder) Scheduled() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(r.delays))
	copy(out, r.delays)

	return out
}
