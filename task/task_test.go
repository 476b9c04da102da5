package task

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/audio"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/trigger"
)

// testConfig returns a small configuration so block tests stay fast.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NTarget = 8
	cfg.NDeviant = 2
	cfg.BufferDuration = 2
	cfg.InterBlockDelay = 0.5

	return cfg
}

// testDeps returns deps driven by clk, with recording sound and trigger
// sinks and a silent logger.
func testDeps(clk clock.Clock) (Deps, *audio.Recorder, *trigger.Recorder) {
	sound := audio.NewRecorder()
	trig := trigger.NewRecorder(clk)
	deps := Deps{
		Clock:   clk,
		Sound:   sound,
		Trigger: trig,
		RNG:     rand.New(rand.NewSource(7)),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return deps, sound, trig
}

// countCode returns the number of occurrences of code in seq.
func countCode(seq []int, code int) int {
	n := 0
	for _, c := range seq {
		if c == code {
			n++
		}
	}

	return n
}
