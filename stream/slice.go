package stream

// SliceSource replays a preloaded single-channel recording in
// fixed-size chunks, one chunk per Pull. It backs deterministic tests
// of the detector and the synchronous blocks.
type SliceSource struct {
	rate    float64
	channel string
	ts      []float64
	vals    []float64
	chunk   int
	pos     int
}

// NewSliceSource returns a SliceSource over the given samples. chunk
// bounds the number of samples returned per Pull; a non-positive chunk
// returns everything in one Pull.
func NewSliceSource(rate float64, channel string, ts, vals []float64, chunk int) *SliceSource {
	if chunk <= 0 {
		chunk = len(ts)
	}

	return &SliceSource{rate: rate, channel: channel, ts: ts, vals: vals, chunk: chunk}
}

// SampleRate returns the recording sample rate in Hz.
func (s *SliceSource) SampleRate() float64 {
	return s.rate
}

// ChannelNames returns the single channel label.
func (s *SliceSource) ChannelNames() []string {
	return []string{s.channel}
}

// Pull returns the next chunk, or empty slices once exhausted.
func (s *SliceSource) Pull() ([]float64, [][]float64) {
	if s.pos >= len(s.ts) {
		return nil, nil
	}

	end := s.pos + s.chunk
	if end > len(s.ts) {
		end = len(s.ts)
	}
	ts := s.ts[s.pos:end]
	vals := s.vals[s.pos:end]
	s.pos = end

	return ts, [][]float64{vals}
}

// Exhausted reports whether every sample has been pulled.
func (s *SliceSource) Exhausted() bool {
	return s.pos >= len(s.ts)
}
