package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/testutil"
)

func TestSimulatorPullFollowsClock(t *testing.T) {
	clk := clock.NewVirtual(0)
	sim := NewSimulator(clk, WaveECG)

	ts, data := sim.Pull()
	assert.Empty(t, ts, "no time elapsed, no samples")
	assert.Empty(t, data)

	clk.Advance(1)
	ts, data = sim.Pull()
	require.Len(t, ts, 512, "one second at the default rate")
	require.Len(t, data, 1)
	require.Len(t, data[0], 512)

	for i := 1; i < len(ts); i++ {
		assert.Greater(t, ts[i], ts[i-1])
	}
	testutil.RequireFinite(t, data[0])

	// Nothing new until the clock moves again.
	ts, _ = sim.Pull()
	assert.Empty(t, ts)
}

func TestSimulatorDeterministic(t *testing.T) {
	pull := func() []float64 {
		clk := clock.NewVirtual(0)
		sim := NewSimulator(clk, WaveECG, WithSimSeed(9))
		clk.Advance(2)
		_, data := sim.Pull()

		return data[0]
	}

	testutil.RequireSliceNearlyEqual(t, pull(), pull(), 0)
}

func TestSimulatorRespirationDefaults(t *testing.T) {
	clk := clock.NewVirtual(0)
	sim := NewSimulator(clk, WaveRespiration)

	assert.Equal(t, []string{"RESP"}, sim.ChannelNames())

	clk.Advance(10)
	_, data := sim.Pull()
	// One dome per cycle: the signal stays within the amplitude band.
	testutil.RequireWithinBand(t, data[0], -100, 1100)
}

func TestSimulatorOptions(t *testing.T) {
	clk := clock.NewVirtual(0)
	sim := NewSimulator(clk, WaveECG,
		WithSimSampleRate(128),
		WithSimChannelName("ECG1"))

	assert.Equal(t, 128.0, sim.SampleRate())
	assert.Equal(t, []string{"ECG1"}, sim.ChannelNames())

	clk.Advance(0.5)
	ts, _ := sim.Pull()
	assert.Len(t, ts, 64)
}
