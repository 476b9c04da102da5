package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/testutil"
)

func TestNewHeartRateMonitorRejectsSmallSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		_, err := NewHeartRateMonitor(size)
		require.ErrorIs(t, err, ErrInvalidParameter, "size %d", size)
	}
}

func TestHeartRateMonitorInitialization(t *testing.T) {
	m, err := NewHeartRateMonitor(10)
	require.NoError(t, err)

	for beat := 0; beat < 10; beat++ {
		require.False(t, m.Initialized(), "after %d beats", beat)

		_, err := m.MeanDelay()
		require.ErrorIs(t, err, ErrNotInitialized)
		_, err = m.Rate()
		require.ErrorIs(t, err, ErrNotInitialized)
		_, err = m.BPM()
		require.ErrorIs(t, err, ErrNotInitialized)

		m.AddHeartbeat(float64(beat))
	}
	require.True(t, m.Initialized())
}

func TestHeartRateMonitorEstimates(t *testing.T) {
	m, err := NewHeartRateMonitor(10)
	require.NoError(t, err)

	// One beat per second, well past the window size: the rolling
	// window must keep only the most recent beats.
	for beat := 0; beat < 20; beat++ {
		m.AddHeartbeat(float64(beat))
	}

	delay, err := m.MeanDelay()
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, delay, 1.0, 1e-12)

	rate, err := m.Rate()
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, rate, 1.0, 1e-12)

	bpm, err := m.BPM()
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, bpm, 60.0, 1e-12)
}

func TestHeartRateMonitorFasterRhythm(t *testing.T) {
	m, err := NewHeartRateMonitor(5)
	require.NoError(t, err)

	for beat := 0; beat < 7; beat++ {
		m.AddHeartbeat(0.5 * float64(beat))
	}

	bpm, err := m.BPM()
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, bpm, 120.0, 1e-12)
}
