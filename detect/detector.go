package detect

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

// refractory is the minimum delay in seconds between two reported
// peaks. Anything faster is a physiologically implausible double count.
const refractory = 0.25

// prefillPoll is the pause in seconds between pulls while the window
// fills.
const prefillPoll = 0.001

type config struct {
	bufferDuration float64
	heightPerc     float64
	prominence     *float64 // nil disables the constraint
	widthMS        *float64 // nil disables the constraint
	logger         *slog.Logger
}

// Option configures a Detector.
type Option func(*config)

// WithBufferDuration sets the rolling window duration in seconds.
func WithBufferDuration(seconds float64) Option {
	return func(c *config) {
		c.bufferDuration = seconds
	}
}

// WithHeightPercentile sets the minimum peak height, expressed as a
// percentile of the conditioned window.
func WithHeightPercentile(perc float64) Option {
	return func(c *config) {
		c.heightPerc = perc
	}
}

// WithProminence sets the minimum peak prominence.
func WithProminence(prominence float64) Option {
	return func(c *config) {
		c.prominence = &prominence
	}
}

// WithoutProminence disables the prominence constraint.
func WithoutProminence() Option {
	return func(c *config) {
		c.prominence = nil
	}
}

// WithWidth sets the minimum peak width in milliseconds. The width is
// converted to samples against the source sample rate.
func WithWidth(widthMS float64) Option {
	return func(c *config) {
		c.widthMS = &widthMS
	}
}

// WithoutWidth disables the width constraint.
func WithoutWidth() Option {
	return func(c *config) {
		c.widthMS = nil
	}
}

// WithLogger sets the logger used for peak gating diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Detector finds peaks in one channel of a pulled sample stream.
//
// Each call to NewPeak conditions the current window (linear detrend),
// searches for plausible maxima, and evaluates only the most recent
// candidate. The first candidate ever seen is recorded but not
// reported, so the boundary of a still-filling window is never flagged
// as a real event. Later candidates are suppressed when they repeat the
// stored last peak or fall within the refractory period of it.
type Detector struct {
	src        stream.Source
	channel    int
	sampleRate float64

	bufferDuration float64
	heightPerc     float64
	prominence     float64
	widthSamples   float64

	win       *Window
	axis      []float64
	ts        []float64
	vals      []float64
	detrended []float64

	lastPeak    float64
	hasLastPeak bool

	log *slog.Logger
}

// New returns a Detector bound to the named channel of src.
func New(src stream.Source, channel string, opts ...Option) (*Detector, error) {
	defaultProminence := 20.0
	cfg := config{
		bufferDuration: 4.0,
		heightPerc:     98.0,
		prominence:     &defaultProminence,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.bufferDuration <= 0.2 {
		return nil, fmt.Errorf("%w: buffer duration must be strictly larger than 0.2 s: %g", ErrInvalidParameter, cfg.bufferDuration)
	}
	if cfg.heightPerc <= 0 || 100 <= cfg.heightPerc {
		return nil, fmt.Errorf("%w: height percentile must be in (0, 100): %g", ErrInvalidParameter, cfg.heightPerc)
	}
	if cfg.prominence != nil && *cfg.prominence <= 0 {
		return nil, fmt.Errorf("%w: prominence must be strictly positive: %g", ErrInvalidParameter, *cfg.prominence)
	}
	if cfg.widthMS != nil && *cfg.widthMS <= 0 {
		return nil, fmt.Errorf("%w: width must be strictly positive: %g", ErrInvalidParameter, *cfg.widthMS)
	}

	idx, err := stream.ChannelIndex(src, channel)
	if err != nil {
		return nil, err
	}

	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("%w: source sample rate must be > 0: %g", ErrInvalidParameter, rate)
	}

	capacity := int(math.Ceil(cfg.bufferDuration * rate))

	d := &Detector{
		src:            src,
		channel:        idx,
		sampleRate:     rate,
		bufferDuration: cfg.bufferDuration,
		heightPerc:     cfg.heightPerc,
		prominence:     deref(cfg.prominence),
		widthSamples:   widthToSamples(deref(cfg.widthMS), rate),
		win:            NewWindow(capacity),
		axis:           uniformAxis(cfg.bufferDuration, capacity),
		ts:             make([]float64, capacity),
		vals:           make([]float64, capacity),
		detrended:      make([]float64, capacity),
		log:            cfg.logger,
	}
	d.log.Info("peak detector initialized", "sample_rate", rate, "channel", channel, "buffer_s", cfg.bufferDuration)

	return d, nil
}

// widthToSamples converts a width in milliseconds to samples.
func widthToSamples(widthMS, rate float64) float64 {
	if widthMS <= 0 {
		return 0
	}

	return math.Ceil(widthMS / 1000 * rate)
}

// deref unwraps an optional parameter, mapping nil to the disabled
// value.
func deref(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

// SampleRate returns the source sample rate in Hz.
func (d *Detector) SampleRate() float64 {
	return d.sampleRate
}

// BufferDuration returns the rolling window duration in seconds.
func (d *Detector) BufferDuration() float64 {
	return d.bufferDuration
}

// Update pulls newly arrived samples into the rolling window. It never
// blocks; an empty pull is a no-op.
func (d *Detector) Update() {
	ts, data := d.src.Pull()
	if len(ts) == 0 {
		return
	}
	d.win.Push(ts, data[d.channel])
}

// Prefill pumps Update for one full buffer duration so the window holds
// continuous data before the first peak search.
func (d *Detector) Prefill(clk clock.Clock) {
	d.log.Info("pre-filling detector buffer", "duration_s", d.bufferDuration)
	start := clk.Now()
	for clk.Now()-start <= d.bufferDuration {
		d.Update()
		clk.Sleep(prefillPoll)
	}
}

// NewPeak reports the timestamp of a newly confirmed peak. It returns
// false when no new peak entered the window, when the candidate was
// already reported, or when it falls within the refractory period of
// the last reported peak.
func (d *Detector) NewPeak() (float64, bool) {
	peaks := d.detectPeaks()
	if len(peaks) == 0 {
		return 0, false
	}

	// Only the most recent candidate matters.
	pos := d.ts[peaks[len(peaks)-1]]

	if !d.hasLastPeak {
		// Gate, not a real event: a partially filled window makes the
		// boundary look like a maximum.
		d.log.Debug("first peak found, skipping")
		d.lastPeak = pos
		d.hasLastPeak = true

		return 0, false
	}

	if pos == d.lastPeak {
		return 0, false // already reported
	}
	if pos-d.lastPeak <= refractory {
		d.log.Debug("skipping peak inside refractory period", "found", pos, "last", d.lastPeak, "delta", pos-d.lastPeak)

		return 0, false
	}

	d.lastPeak = pos

	return pos, true
}

// detectPeaks conditions the current window and returns the candidate
// peak indices into the detector's snapshot buffers.
func (d *Detector) detectPeaks() []int {
	d.win.Snapshot(d.ts, d.vals)
	detrend(d.detrended, d.vals, d.axis)

	// The window is never empty and the percentile rank was validated
	// at construction time.
	height, _ := timing.Percentile(d.detrended, d.heightPerc)

	return findPeaks(d.detrended, height, d.prominence, d.widthSamples)
}
