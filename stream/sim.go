package stream

import (
	"math"
	"math/rand"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
)

// Waveform selects the physiological signal shape a Simulator produces.
type Waveform int

const (
	// WaveECG is an ECG-like cycle built from gaussian P-QRS-T bumps.
	WaveECG Waveform = iota
	// WaveRespiration is a slow sinusoidal breathing signal.
	WaveRespiration
)

// SimOption configures a Simulator.
type SimOption func(*Simulator)

// WithSimSampleRate sets the simulated sampling rate in Hz.
func WithSimSampleRate(rate float64) SimOption {
	return func(s *Simulator) {
		if rate > 0 {
			s.rate = rate
		}
	}
}

// WithSimEventRate sets the cycle rate in events per minute (heartbeats
// or breaths).
func WithSimEventRate(perMinute float64) SimOption {
	return func(s *Simulator) {
		if perMinute > 0 {
			s.eventRate = perMinute
		}
	}
}

// WithSimNoise sets the peak amplitude of the additive uniform noise,
// as a fraction of the cycle amplitude.
func WithSimNoise(noise float64) SimOption {
	return func(s *Simulator) {
		if noise >= 0 {
			s.noise = noise
		}
	}
}

// WithSimSeed sets the deterministic noise seed.
func WithSimSeed(seed int64) SimOption {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSimChannelName sets the label of the single simulated channel.
func WithSimChannelName(name string) SimOption {
	return func(s *Simulator) {
		s.channel = name
	}
}

// Simulator is a single-channel Source producing a deterministic
// physiological waveform. Samples are synthesized on demand: each Pull
// yields the samples whose timestamps fall between the previous Pull
// and the clock's current time, so the simulator works equally against
// the real clock and a virtual test clock.
type Simulator struct {
	clk       clock.Clock
	wave      Waveform
	rate      float64
	eventRate float64
	noise     float64
	amplitude float64
	channel   string
	rng       *rand.Rand

	phase float64
	last  float64
}

// NewSimulator returns a Simulator for the given waveform. Defaults:
// 512 Hz sampling, 70 events/min (ECG) or 16 events/min (respiration),
// 2% noise, seed 1.
func NewSimulator(clk clock.Clock, wave Waveform, opts ...SimOption) *Simulator {
	s := &Simulator{
		clk:       clk,
		wave:      wave,
		rate:      512,
		eventRate: 70,
		noise:     0.02,
		amplitude: 1000,
		channel:   "ECG",
		rng:       rand.New(rand.NewSource(1)),
		last:      clk.Now(),
	}
	if wave == WaveRespiration {
		s.eventRate = 16
		s.channel = "RESP"
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// SampleRate returns the simulated sampling rate in Hz.
func (s *Simulator) SampleRate() float64 {
	return s.rate
}

// ChannelNames returns the single simulated channel label.
func (s *Simulator) ChannelNames() []string {
	return []string{s.channel}
}

// Pull synthesizes and returns the samples elapsed since the last call.
func (s *Simulator) Pull() ([]float64, [][]float64) {
	now := s.clk.Now()
	n := int((now - s.last) * s.rate)
	if n <= 0 {
		return nil, nil
	}

	ts := make([]float64, n)
	vals := make([]float64, n)
	step := 1 / s.rate
	for i := 0; i < n; i++ {
		s.last += step
		ts[i] = s.last
		vals[i] = s.next()
	}

	return ts, [][]float64{vals}
}

// next synthesizes one sample and advances the cycle phase.
func (s *Simulator) next() float64 {
	s.phase += s.eventRate / 60 / s.rate
	if s.phase >= 1 {
		s.phase -= 1
	}
	t := s.phase

	var v float64
	switch s.wave {
	case WaveECG:
		// P, QRS and T deflections as gaussian bumps over one
		// normalized cycle; the R deflection dominates.
		v = 0.08*gaussBump(t, 0.18, 0.03) -
			0.12*gaussBump(t, 0.30, 0.01) +
			1.00*gaussBump(t, 0.32, 0.008) -
			0.25*gaussBump(t, 0.35, 0.012) +
			0.25*gaussBump(t, 0.60, 0.06)
	case WaveRespiration:
		// One smooth dome per breathing cycle, peaking mid-cycle.
		v = 0.5 - 0.5*math.Cos(2*math.Pi*t)
	}

	v += s.noise * (s.rng.Float64()*2 - 1)

	return v * s.amplitude
}

func gaussBump(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma

	return math.Exp(-0.5 * z * z)
}
