package detect

import "gonum.org/v1/gonum/stat"

// detrend subtracts the first-order least-squares fit of vals from
// vals, writing the result into dst. The fit is computed against xs, a
// synthetic uniform time axis spanning [0, bufferDuration]; using a
// synthetic axis instead of the sample timestamps removes baseline
// drift without phase distortion and is robust to timestamp jitter.
func detrend(dst, vals, xs []float64) {
	alpha, beta := stat.LinearRegression(xs, vals, nil, false)
	for i, v := range vals {
		dst[i] = v - (alpha + beta*xs[i])
	}
}

// uniformAxis returns n points evenly spaced over [0, duration].
func uniformAxis(duration float64, n int) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		return xs
	}

	step := duration / float64(n-1)
	for i := range xs {
		xs[i] = float64(i) * step
	}

	return xs
}
