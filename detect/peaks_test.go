package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMaxima(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want []int
	}{
		{"single peak", []float64{0, 1, 0}, []int{1}},
		{"two peaks", []float64{0, 2, 0, 3, 0}, []int{1, 3}},
		{"monotonic", []float64{0, 1, 2, 3}, nil},
		{"plateau midpoint", []float64{0, 1, 1, 1, 0}, []int{2}},
		{"even plateau rounds down", []float64{0, 1, 1, 0}, []int{1}},
		{"boundary never a peak", []float64{3, 1, 0, 1, 3}, nil},
		{"plateau at edge ignored", []float64{0, 1, 1}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, localMaxima(tc.x))
		})
	}
}

func TestFindPeaksHeight(t *testing.T) {
	x := []float64{0, 5, 0, 2, 0, 8, 0}

	assert.Equal(t, []int{1, 3, 5}, findPeaks(x, 0, 0, 0))
	assert.Equal(t, []int{1, 5}, findPeaks(x, 4, 0, 0))
	assert.Equal(t, []int{5}, findPeaks(x, 8, 0, 0))
}

func TestPeakProminences(t *testing.T) {
	// The middle peak is shielded by two higher neighbors; its
	// prominence reaches only down to the higher of its two bases.
	x := []float64{0, 10, 4, 6, 2, 9, 0}

	proms, left, right := peakProminences(x, []int{1, 3, 5})
	require.Len(t, proms, 3)
	assert.Equal(t, 10.0, proms[0])
	assert.Equal(t, 2.0, proms[1]) // 6 - max(4, 2)
	assert.Equal(t, 7.0, proms[2]) // 9 - max(2, 0)
	assert.Equal(t, []int{0, 2, 4}, left)
	assert.Equal(t, []int{6, 4, 6}, right)
}

func TestFindPeaksProminenceFilter(t *testing.T) {
	x := []float64{0, 10, 4, 6, 2, 9, 0}

	assert.Equal(t, []int{1, 3, 5}, findPeaks(x, 0, 1, 0))
	assert.Equal(t, []int{1, 5}, findPeaks(x, 0, 5, 0))
}

func TestPeakWidthInterpolation(t *testing.T) {
	// A symmetric triangle of prominence 3: at half prominence (1.5)
	// each flank is crossed midway between samples 1-2 and 4-5.
	x := []float64{0, 1, 2, 3, 2, 1, 0}

	peaks := []int{3}
	proms, left, right := peakProminences(x, peaks)
	widths := peakWidths(x, peaks, proms, left, right)
	require.Len(t, widths, 1)
	assert.InDelta(t, 3.0, widths[0], 1e-12)
}

func TestFindPeaksWidthFilter(t *testing.T) {
	x := []float64{0, 1, 2, 3, 2, 1, 0, 5, 0}

	// The triangle is 3 samples wide at half prominence; the needle at
	// index 7 is narrower.
	assert.Equal(t, []int{3, 7}, findPeaks(x, 0, 0, 1))
	assert.Equal(t, []int{3}, findPeaks(x, 0, 0, 2.5))
	assert.Empty(t, findPeaks(x, 0, 0, 10))
}
