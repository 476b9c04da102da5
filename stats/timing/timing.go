package timing

import (
	"fmt"
	"math"
	"sort"
)

// Percentile returns the p-th percentile of xs using linear
// interpolation between adjacent ranks. xs does not need to be sorted.
func Percentile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errEmptyInput
	}
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("percentile rank must be in [0, 100]: %g", p)
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], nil
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}

	frac := rank - float64(lo)

	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), nil
}

// Diff returns the consecutive differences xs[i+1]-xs[i].
// The result has length len(xs)-1; an input shorter than two elements
// yields an empty slice.
func Diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}

	out := make([]float64, len(xs)-1)
	for i := range out {
		out[i] = xs[i+1] - xs[i]
	}

	return out
}

// TrimOutliers returns the values of xs lying strictly inside the
// [perc, 100-perc] percentile band. Band edges themselves are excluded,
// matching the strict comparison of the delay derivation.
func TrimOutliers(xs []float64, perc float64) ([]float64, error) {
	if perc < 0 || perc > 50 {
		return nil, fmt.Errorf("outlier percentage must be in [0, 50]: %g", perc)
	}

	lo, err := Percentile(xs, perc)
	if err != nil {
		return nil, err
	}
	hi, err := Percentile(xs, 100-perc)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if lo < v && v < hi {
			out = append(out, v)
		}
	}

	return out, nil
}
