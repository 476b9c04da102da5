package task

import "fmt"

// DefaultBaselineDuration is the standard resting baseline length in
// seconds.
const DefaultBaselineDuration = 60

// Baseline is a stimulus-free resting block: a start trigger, a fixed
// wait and a stop trigger.
type Baseline struct {
	cfg      Config
	deps     Deps
	codes    StartStop
	duration float64
	state    State
}

// NewBaseline returns a baseline block of the given duration in
// seconds.
func NewBaseline(cfg Config, deps Deps, duration float64) (*Baseline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: baseline duration must be > 0: %g", ErrInvalidParameter, duration)
	}

	return &Baseline{
		cfg:      cfg,
		deps:     deps.withDefaults(),
		codes:    cfg.Blocks[BaselineBlock],
		duration: duration,
	}, nil
}

// Run executes the baseline block.
func (b *Baseline) Run() error {
	if b.state != Idle {
		return fmt.Errorf("%w: %s", ErrBlockConsumed, BaselineBlock)
	}
	b.state = Running

	b.deps.Logger.Info("block started", "type", BaselineBlock.String(), "duration_s", b.duration)
	b.deps.signal(b.codes.Start)
	b.deps.Clock.Sleep(b.duration)
	b.deps.signal(b.codes.Stop)

	b.state = Complete
	b.deps.Logger.Info("block complete", "type", BaselineBlock.String())

	return nil
}

// State returns the lifecycle state.
func (b *Baseline) State() State {
	return b.state
}
