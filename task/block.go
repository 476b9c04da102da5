package task

import (
	"fmt"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/sequence"
)

// block carries the state shared by every stimulus block: the validated
// configuration, the resolved collaborators, the generated stimulus
// sequence and the lifecycle state. A block runs once; a second Run
// fails with ErrBlockConsumed.
type block struct {
	typ   Type
	cfg   Config
	deps  Deps
	codes StartStop
	seq   []int
	del   deliverer
	state State
}

// newBlock validates cfg, resolves the collaborators and generates the
// stimulus sequence for one block of the given type.
func newBlock(typ Type, cfg Config, deps Deps) (*block, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()

	// Both lookups were checked by Validate.
	target, _ := cfg.TargetCode()
	deviant, _ := cfg.DeviantCode()

	gen, err := sequence.New(cfg.NTarget, cfg.NDeviant, target, deviant,
		sequence.WithEdgePerc(cfg.EdgePerc),
		sequence.WithRNG(deps.RNG),
		sequence.WithLogger(deps.Logger))
	if err != nil {
		return nil, err
	}
	seq, err := gen.Generate()
	if err != nil {
		return nil, err
	}

	return &block{
		typ:   typ,
		cfg:   cfg,
		deps:  deps,
		codes: cfg.Blocks[typ],
		seq:   seq,
		del:   deliverer{cfg: cfg, deps: deps, targetCode: target},
	}, nil
}

// begin moves the block to Running, or fails when it already ran.
func (b *block) begin() error {
	if b.state != Idle {
		return fmt.Errorf("%w: %s", ErrBlockConsumed, b.typ)
	}
	b.state = Running

	return nil
}

// start marks the experimental start of the block on the trigger line.
func (b *block) start() {
	b.deps.Logger.Info("block started", "type", b.typ.String(), "stimuli", len(b.seq))
	b.deps.signal(b.codes.Start)
}

// finish waits for the last sound to ring out, marks the experimental
// end of the block and moves it to Complete.
func (b *block) finish() {
	b.deps.Clock.Sleep(soundTailFactor * b.cfg.SoundDuration)
	b.deps.signal(b.codes.Stop)
	b.state = Complete
	b.deps.Logger.Info("block complete", "type", b.typ.String())
}

// State returns the lifecycle state.
func (b *block) State() State {
	return b.state
}

// Sequence returns a copy of the stimulus code sequence.
func (b *block) Sequence() []int {
	out := make([]int, len(b.seq))
	copy(out, b.seq)

	return out
}
