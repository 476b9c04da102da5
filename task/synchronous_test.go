package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/testutil"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

// testECG returns a clean simulated ECG source on the given clock.
func testECG(clk clock.Clock) *stream.Simulator {
	return stream.NewSimulator(clk, stream.WaveECG,
		stream.WithSimSampleRate(256),
		stream.WithSimEventRate(70),
		stream.WithSimNoise(0),
		stream.WithSimSeed(3))
}

func TestSynchronousDeliversOnHeartbeats(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, sound, trig := testDeps(clk)
	cfg := testConfig()

	b, err := NewSynchronous(cfg, deps, testECG(clk), "ECG")
	require.NoError(t, err)
	require.NoError(t, b.Run())
	require.Equal(t, Complete, b.State())

	seq := b.Sequence()
	peaks := b.Peaks()
	require.Len(t, peaks, len(seq))

	// Every delivered peak rides one cardiac cycle after the previous
	// one at 70 events per minute.
	const cycle = 60.0 / 70
	for _, d := range timing.Diff(peaks) {
		require.InDelta(t, cycle, d, 0.05)
	}

	// The trigger stream is start, one code per delivered stimulus,
	// stop; each stimulus trigger fires one target delay after its peak.
	codes := trig.Codes()
	times := trig.Times()
	require.Equal(t, cfg.Blocks[SynchronousBlock].Start, codes[0])
	require.Equal(t, cfg.Blocks[SynchronousBlock].Stop, codes[len(codes)-1])
	require.Equal(t, seq, codes[1:len(codes)-1])

	stim := times[1 : len(times)-1]
	for i := range stim {
		testutil.RequireNearlyEqual(t, stim[i], peaks[i]+cfg.TargetDelay, 1e-9)
	}

	target, err := cfg.TargetCode()
	require.NoError(t, err)
	require.Len(t, sound.Scheduled(), countCode(seq, target))
}

func TestNewSynchronousRejectsUnknownChannel(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, _, _ := testDeps(clk)

	_, err := NewSynchronous(testConfig(), deps, testECG(clk), "EEG")
	require.ErrorIs(t, err, stream.ErrChannelNotFound)
}

func TestSynchronousRunsOnce(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, _, _ := testDeps(clk)

	b, err := NewSynchronous(testConfig(), deps, testECG(clk), "ECG")
	require.NoError(t, err)
	require.NoError(t, b.Run())
	require.ErrorIs(t, b.Run(), ErrBlockConsumed)
}
