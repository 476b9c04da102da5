package task

import (
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/detect"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

// Synchronous locks every stimulus onto a detected biosignal peak: each
// confirmed peak schedules the next sequence element at the target
// delay after the peak timestamp.
type Synchronous struct {
	*block
	det   *detect.Detector
	peaks []float64
}

// NewSynchronous returns a synchronous block detecting peaks on the
// named channel of src.
func NewSynchronous(cfg Config, deps Deps, src stream.Source, channel string) (*Synchronous, error) {
	b, err := newBlock(SynchronousBlock, cfg, deps)
	if err != nil {
		return nil, err
	}

	det, err := detect.New(src, channel,
		detect.WithBufferDuration(cfg.BufferDuration),
		detect.WithLogger(b.deps.Logger))
	if err != nil {
		return nil, err
	}

	return &Synchronous{block: b, det: det}, nil
}

// Run executes the synchronous block. It returns once every sequence
// element has been delivered on a peak.
func (s *Synchronous) Run() error {
	if err := s.begin(); err != nil {
		return err
	}

	s.det.Prefill(s.deps.Clock)
	s.start()

	counter := 0
	for counter < len(s.seq) {
		s.det.Update()
		pos, ok := s.det.NewPeak()
		if !ok {
			s.deps.Clock.Sleep(pollInterval)

			continue
		}

		if s.del.deliver(pos, s.seq[counter]) {
			s.peaks = append(s.peaks, pos)
			counter++
		}
	}

	s.finish()

	return nil
}

// Peaks returns a copy of the timestamps of the peaks that carried a
// delivered stimulus.
func (s *Synchronous) Peaks() []float64 {
	out := make([]float64, len(s.peaks))
	copy(out, s.peaks)

	return out
}
