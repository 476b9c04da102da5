package task

import "fmt"

// Isochronous delivers the stimulus sequence at a fixed onset-to-onset
// interval, decoupled from the biosignal.
type Isochronous struct {
	*block
	delay float64
}

// NewIsochronous returns an isochronous block with the given
// inter-stimulus delay in seconds, typically the mean inter-peak delay
// of a prior synchronous block.
func NewIsochronous(cfg Config, deps Deps, delay float64) (*Isochronous, error) {
	b, err := newBlock(IsochronousBlock, cfg, deps)
	if err != nil {
		return nil, err
	}
	if delay <= cfg.SoundDuration {
		return nil, fmt.Errorf("%w: inter-stimulus delay must exceed the sound duration (%g s): %g",
			ErrInvalidParameter, cfg.SoundDuration, delay)
	}

	return &Isochronous{block: b, delay: delay}, nil
}

// Delay returns the onset-to-onset interval in seconds.
func (b *Isochronous) Delay() float64 {
	return b.delay
}

// Run executes the isochronous block.
func (b *Isochronous) Run() error {
	if err := b.begin(); err != nil {
		return err
	}

	// No detector to fill; sleeping the same duration keeps block
	// lengths comparable across conditions.
	b.deps.Clock.Sleep(b.cfg.BufferDuration)
	b.start()

	for _, code := range b.seq {
		tick := b.deps.Clock.Now()

		if code == b.del.targetCode {
			b.deps.Sound.Play(b.cfg.TargetDelay)
		}
		b.deps.Clock.Sleep(b.cfg.TargetDelay)
		b.deps.signal(code)

		if wait := b.delay - (b.deps.Clock.Now() - tick); wait > 0 {
			b.deps.Clock.Sleep(wait)
		}
	}

	b.finish()

	return nil
}
