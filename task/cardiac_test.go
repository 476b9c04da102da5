package task

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
)

func TestCardiacDeliversOnHeartbeats(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, sound, trig := testDeps(clk)
	cfg := testConfig()
	// A longer sequence so the heart-rate estimate initializes while
	// stimuli are still pending and the predictive skip engages.
	cfg.NTarget = 15
	cfg.NDeviant = 2

	pool, err := timing.NewPool(timing.Diff(rampPeaks(21)), cfg.OutlierPerc, deps.RNG)
	require.NoError(t, err)

	b, err := NewCardiac(cfg, deps, testECG(clk), "ECG", pool)
	require.NoError(t, err)
	require.NoError(t, b.Run())
	require.Equal(t, Complete, b.State())

	seq := b.Sequence()
	peaks := b.Peaks()
	require.Len(t, peaks, len(seq))

	// Deliveries stay locked to real heartbeats: every gap between
	// delivered peaks is a whole number of cardiac cycles, with skipped
	// beats showing up as multi-cycle gaps.
	const cycle = 60.0 / 70
	for _, d := range timing.Diff(peaks) {
		cycles := d / cycle
		require.InDelta(t, math.Round(cycles), cycles, 0.1)
		require.GreaterOrEqual(t, cycles, 0.9)
	}

	codes := trig.Codes()
	require.Equal(t, cfg.Blocks[CardiacBlock].Start, codes[0])
	require.Equal(t, cfg.Blocks[CardiacBlock].Stop, codes[len(codes)-1])
	require.Equal(t, seq, codes[1:len(codes)-1])

	target, err := cfg.TargetCode()
	require.NoError(t, err)
	require.Len(t, sound.Scheduled(), countCode(seq, target))
}

func TestNewCardiacRequiresPool(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, _, _ := testDeps(clk)

	_, err := NewCardiac(testConfig(), deps, testECG(clk), "ECG", nil)
	require.ErrorIs(t, err, ErrInvalidParameter)
}
