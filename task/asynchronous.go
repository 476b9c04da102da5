package task

import (
	"fmt"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
)

// Asynchronous replays the rhythm of a prior synchronous block without
// tracking the live biosignal: each inter-stimulus delay is drawn from
// the distribution of observed inter-peak delays.
type Asynchronous struct {
	*block
	delays []float64
}

// NewAsynchronous derives the inter-stimulus delays by resampling, with
// replacement, the outlier-trimmed inter-peak delays of peaks. Too few
// surviving delays fail with a wrapped timing.ErrInsufficientData.
func NewAsynchronous(cfg Config, deps Deps, peaks []float64) (*Asynchronous, error) {
	b, err := newBlock(AsynchronousBlock, cfg, deps)
	if err != nil {
		return nil, err
	}

	sampler, err := timing.NewSampler(timing.Diff(peaks), cfg.OutlierPerc, b.deps.RNG)
	if err != nil {
		return nil, err
	}

	return &Asynchronous{block: b, delays: sampler.Draw(len(b.seq) - 1)}, nil
}

// NewAsynchronousDelays builds an asynchronous block over precomputed
// delays, the fallback used when a fresh derivation fails.
func NewAsynchronousDelays(cfg Config, deps Deps, delays []float64) (*Asynchronous, error) {
	b, err := newBlock(AsynchronousBlock, cfg, deps)
	if err != nil {
		return nil, err
	}
	if len(delays) < len(b.seq)-1 {
		return nil, fmt.Errorf("%w: %d delays for %d stimuli", ErrInvalidParameter, len(delays), len(b.seq))
	}

	out := make([]float64, len(b.seq)-1)
	copy(out, delays)

	return &Asynchronous{block: b, delays: out}, nil
}

// NewAsynchronousRaw resamples the inter-peak delays of peaks without
// outlier trimming, the degraded last resort when trimming leaves too
// little data.
func NewAsynchronousRaw(cfg Config, deps Deps, peaks []float64) (*Asynchronous, error) {
	b, err := newBlock(AsynchronousBlock, cfg, deps)
	if err != nil {
		return nil, err
	}

	pool, err := timing.NewRawPool(timing.Diff(peaks), b.deps.RNG)
	if err != nil {
		return nil, err
	}

	delays := make([]float64, len(b.seq)-1)
	for i := range delays {
		delays[i] = pool.Draw()
	}

	return &Asynchronous{block: b, delays: delays}, nil
}

// Delays returns a copy of the inter-stimulus delays, one per gap.
func (b *Asynchronous) Delays() []float64 {
	out := make([]float64, len(b.delays))
	copy(out, b.delays)

	return out
}

// Run executes the asynchronous block.
func (b *Asynchronous) Run() error {
	if err := b.begin(); err != nil {
		return err
	}

	b.deps.Clock.Sleep(b.cfg.BufferDuration)
	b.start()

	for i, code := range b.seq {
		tick := b.deps.Clock.Now()

		if code == b.del.targetCode {
			b.deps.Sound.Play(b.cfg.TargetDelay)
		}
		b.deps.Clock.Sleep(b.cfg.TargetDelay)
		b.deps.signal(code)

		if i < len(b.delays) {
			if wait := b.delays[i] - (b.deps.Clock.Now() - tick); wait > 0 {
				b.deps.Clock.Sleep(wait)
			}
		}
	}

	b.finish()

	return nil
}
