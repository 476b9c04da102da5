package task

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/audio"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/trigger"
)

// Deps bundles the external collaborators a block drives: the time
// source, the sound sink, the trigger sink, the random source and the
// logger. Zero fields are replaced by defaults at block construction.
type Deps struct {
	Clock   clock.Clock
	Sound   audio.Player
	Trigger trigger.Trigger
	RNG     *rand.Rand
	Logger  *slog.Logger
}

// withDefaults fills the unset fields.
func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = clock.NewReal()
	}
	if d.Sound == nil {
		d.Sound = audio.NewRecorder()
	}
	if d.Trigger == nil {
		d.Trigger = trigger.NewSlog(d.Logger)
	}
	if d.RNG == nil {
		d.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return d
}

// signal emits a trigger code, logging instead of propagating sink
// errors: a failed trigger must not abort a running block.
func (d Deps) signal(code int) {
	if err := d.Trigger.Signal(code); err != nil {
		d.Logger.Error("trigger signal failed", "code", code, "err", err)
	}
}
