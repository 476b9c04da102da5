package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/testutil"
)

func TestBaselineRun(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, sound, trig := testDeps(clk)
	cfg := testConfig()

	b, err := NewBaseline(cfg, deps, 60)
	require.NoError(t, err)
	require.Equal(t, Idle, b.State())

	require.NoError(t, b.Run())
	require.Equal(t, Complete, b.State())

	// Only the bracketing triggers, exactly one duration apart, and no
	// sound at all.
	require.Equal(t, []int{cfg.Blocks[BaselineBlock].Start, cfg.Blocks[BaselineBlock].Stop}, trig.Codes())
	times := trig.Times()
	testutil.RequireNearlyEqual(t, times[1]-times[0], 60, 1e-12)
	require.Empty(t, sound.Scheduled())
}

func TestBaselineRunsOnce(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, _, _ := testDeps(clk)

	b, err := NewBaseline(testConfig(), deps, 1)
	require.NoError(t, err)
	require.NoError(t, b.Run())
	require.ErrorIs(t, b.Run(), ErrBlockConsumed)
}

func TestNewBaselineRejectsBadDuration(t *testing.T) {
	clk := clock.NewVirtual(0)
	deps, _, _ := testDeps(clk)

	_, err := NewBaseline(testConfig(), deps, 0)
	require.ErrorIs(t, err, ErrInvalidParameter)
}
