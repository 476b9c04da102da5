package task

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

// Session runs blocks one after the other and carries the artifacts
// that cross block boundaries: the delivered peak timestamps of the
// last synchronous block feed the isochronous delay, the asynchronous
// delay distribution and the cardiac target pool; the last valid delay
// derivation is cached as a fallback.
type Session struct {
	cfg     Config
	deps    Deps
	src     stream.Source
	channel string

	baselineDuration float64

	syncPeaks  []float64
	lastDelays []float64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBaselineDuration sets the baseline block duration in seconds.
func WithBaselineDuration(seconds float64) SessionOption {
	return func(s *Session) {
		s.baselineDuration = seconds
	}
}

// NewSession returns a Session delivering stimuli against peaks found
// on the named channel of src.
func NewSession(cfg Config, deps Deps, src stream.Source, channel string, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, stream.ErrNoSource
	}
	if _, err := stream.ChannelIndex(src, channel); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:              cfg,
		deps:             deps.withDefaults(),
		src:              src,
		channel:          channel,
		baselineDuration: DefaultBaselineDuration,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.baselineDuration <= 0 {
		return nil, fmt.Errorf("%w: baseline duration must be > 0: %g", ErrInvalidParameter, s.baselineDuration)
	}

	return s, nil
}

// Run executes the blocks in order, separated by the inter-block delay.
func (s *Session) Run(order []Type) error {
	for i, typ := range order {
		if i > 0 {
			s.deps.Clock.Sleep(s.cfg.InterBlockDelay)
		}
		if err := s.runBlock(typ); err != nil {
			return fmt.Errorf("session: %s block: %w", typ, err)
		}
	}

	return nil
}

func (s *Session) runBlock(typ Type) error {
	switch typ {
	case BaselineBlock:
		b, err := NewBaseline(s.cfg, s.deps, s.baselineDuration)
		if err != nil {
			return err
		}

		return b.Run()

	case SynchronousBlock:
		b, err := NewSynchronous(s.cfg, s.deps, s.src, s.channel)
		if err != nil {
			return err
		}
		if err := b.Run(); err != nil {
			return err
		}
		s.syncPeaks = b.Peaks()

		return nil

	case IsochronousBlock:
		delay, err := s.MeanSyncDelay()
		if err != nil {
			return err
		}
		b, err := NewIsochronous(s.cfg, s.deps, delay)
		if err != nil {
			return err
		}

		return b.Run()

	case AsynchronousBlock:
		b, err := s.newAsynchronous()
		if err != nil {
			return err
		}

		return b.Run()

	case CardiacBlock:
		pool, err := s.delayPool()
		if err != nil {
			return err
		}
		b, err := NewCardiac(s.cfg, s.deps, s.src, s.channel, pool)
		if err != nil {
			return err
		}
		if err := b.Run(); err != nil {
			return err
		}
		s.syncPeaks = b.Peaks()

		return nil

	default:
		return fmt.Errorf("%w: unknown block type %d", ErrInvalidParameter, int(typ))
	}
}

// MeanSyncDelay returns the mean outlier-trimmed inter-peak delay of
// the last peak-locked block.
func (s *Session) MeanSyncDelay() (float64, error) {
	if len(s.syncPeaks) < 2 {
		return 0, fmt.Errorf("%w: %d delivered peaks on record", timing.ErrInsufficientData, len(s.syncPeaks))
	}

	band, err := timing.TrimOutliers(timing.Diff(s.syncPeaks), s.cfg.OutlierPerc)
	if err != nil {
		return 0, err
	}
	if len(band) == 0 {
		return 0, fmt.Errorf("%w: no delays survive trimming", timing.ErrInsufficientData)
	}

	return stat.Mean(band, nil), nil
}

// newAsynchronous derives the asynchronous delays from the recorded
// peaks, falling back first to the last valid derivation and then to
// the raw untrimmed delays.
func (s *Session) newAsynchronous() (*Asynchronous, error) {
	b, err := NewAsynchronous(s.cfg, s.deps, s.syncPeaks)
	if err == nil {
		s.lastDelays = b.Delays()

		return b, nil
	}
	if !errors.Is(err, timing.ErrInsufficientData) {
		return nil, err
	}
	s.deps.Logger.Warn("delay derivation failed, falling back", "err", err)

	if len(s.lastDelays) > 0 {
		if b, err := NewAsynchronousDelays(s.cfg, s.deps, s.lastDelays); err == nil {
			return b, nil
		}
	}

	return NewAsynchronousRaw(s.cfg, s.deps, s.syncPeaks)
}

// delayPool builds the cardiac target pool from the recorded peaks,
// with the same fallback order as the asynchronous derivation.
func (s *Session) delayPool() (*timing.Pool, error) {
	pool, err := timing.NewPool(timing.Diff(s.syncPeaks), s.cfg.OutlierPerc, s.deps.RNG)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, timing.ErrInsufficientData) {
		return nil, err
	}
	s.deps.Logger.Warn("delay pool derivation failed, falling back", "err", err)

	if len(s.lastDelays) > 0 {
		if pool, err := timing.NewRawPool(s.lastDelays, s.deps.RNG); err == nil {
			return pool, nil
		}
	}

	return timing.NewRawPool(timing.Diff(s.syncPeaks), s.deps.RNG)
}
