package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/testutil"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

// spikeTrain returns n samples at the given rate: a flat baseline with
// a 3-sample triangular spike (50, 100, 50) centered on each of the
// given indices.
func spikeTrain(n int, rate float64, centers ...int) (ts, vals []float64) {
	ts = make([]float64, n)
	vals = make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) / rate
	}
	for _, c := range centers {
		vals[c-1] = 50
		vals[c] = 100
		vals[c+1] = 50
	}

	return ts, vals
}

func TestNewValidation(t *testing.T) {
	ts, vals := spikeTrain(100, 100)
	src := stream.NewSliceSource(100, "ECG", ts, vals, 0)

	tests := []struct {
		name string
		opts []Option
	}{
		{"buffer too short", []Option{WithBufferDuration(0.2)}},
		{"zero height percentile", []Option{WithHeightPercentile(0)}},
		{"height percentile at 100", []Option{WithHeightPercentile(100)}},
		{"zero prominence", []Option{WithProminence(0)}},
		{"zero width", []Option{WithWidth(0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(src, "ECG", tc.opts...)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}

	_, err := New(src, "EEG")
	require.ErrorIs(t, err, stream.ErrChannelNotFound)

	bad := stream.NewSliceSource(0, "ECG", ts, vals, 0)
	_, err = New(bad, "ECG")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDetectorGatingAndRefractory(t *testing.T) {
	const rate = 100.0

	// Spikes at 0.15, 0.70, 1.30, 1.52 and 2.20 s, pulled in 0.5 s
	// chunks so each poll reveals at most one new spike.
	ts, vals := spikeTrain(250, rate, 15, 70, 130, 152, 220)
	src := stream.NewSliceSource(rate, "ECG", ts, vals, 50)

	d, err := New(src, "ECG", WithBufferDuration(0.5))
	require.NoError(t, err)

	// The very first candidate is the artifact of a freshly filled
	// window: recorded, never reported.
	d.Update()
	_, ok := d.NewPeak()
	assert.False(t, ok, "first peak must be gated")

	d.Update()
	pos, ok := d.NewPeak()
	require.True(t, ok)
	testutil.RequireNearlyEqual(t, pos, 0.70, 1e-9)

	// Without new data the same candidate is not reported twice.
	_, ok = d.NewPeak()
	assert.False(t, ok, "repeated candidate must be suppressed")

	d.Update()
	pos, ok = d.NewPeak()
	require.True(t, ok)
	testutil.RequireNearlyEqual(t, pos, 1.30, 1e-9)

	// 1.52 s is only 0.22 s after the last reported peak.
	d.Update()
	_, ok = d.NewPeak()
	assert.False(t, ok, "peak inside the refractory period must be suppressed")

	d.Update()
	pos, ok = d.NewPeak()
	require.True(t, ok)
	testutil.RequireNearlyEqual(t, pos, 2.20, 1e-9)
}

func TestDetectorEmptyPullIsNoOp(t *testing.T) {
	ts, vals := spikeTrain(100, 100, 75)
	src := stream.NewSliceSource(100, "ECG", ts, vals, 0)

	d, err := New(src, "ECG", WithBufferDuration(0.5))
	require.NoError(t, err)

	d.Update() // consumes everything
	require.True(t, src.Exhausted())
	d.Update() // no-op

	// The gated first candidate is still consumed exactly once.
	_, ok := d.NewPeak()
	assert.False(t, ok)
}

func TestPrefillFillsOneBuffer(t *testing.T) {
	ts, vals := spikeTrain(250, 100)
	src := stream.NewSliceSource(100, "ECG", ts, vals, 1)

	d, err := New(src, "ECG", WithBufferDuration(0.5))
	require.NoError(t, err)

	clk := clock.NewVirtual(0)
	d.Prefill(clk)
	assert.GreaterOrEqual(t, clk.Now(), 0.5)
}
