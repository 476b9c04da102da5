package detect

import "math"

// findPeaks returns the indices of local maxima of x that satisfy the
// given constraints, in ascending order. minHeight is always applied;
// minProminence and minWidth (in samples, measured at half prominence)
// are disabled when non-positive. The selection semantics follow the
// conventional peak-search contract: plateau maxima report their
// midpoint, prominence extends to the nearest higher sample or the
// window edge, and width edges are linearly interpolated.
func findPeaks(x []float64, minHeight, minProminence, minWidth float64) []int {
	peaks := localMaxima(x)

	kept := make([]int, 0, len(peaks))
	for _, p := range peaks {
		if x[p] >= minHeight {
			kept = append(kept, p)
		}
	}
	peaks = kept

	if minProminence <= 0 && minWidth <= 0 {
		return peaks
	}

	proms, leftBases, rightBases := peakProminences(x, peaks)

	if minProminence > 0 {
		kept = peaks[:0]
		keptProms := proms[:0]
		keptLeft := leftBases[:0]
		keptRight := rightBases[:0]
		for i, p := range peaks {
			if proms[i] >= minProminence {
				kept = append(kept, p)
				keptProms = append(keptProms, proms[i])
				keptLeft = append(keptLeft, leftBases[i])
				keptRight = append(keptRight, rightBases[i])
			}
		}
		peaks, proms, leftBases, rightBases = kept, keptProms, keptLeft, keptRight
	}

	if minWidth > 0 {
		widths := peakWidths(x, peaks, proms, leftBases, rightBases)
		kept = peaks[:0]
		for i, p := range peaks {
			if widths[i] >= minWidth {
				kept = append(kept, p)
			}
		}
		peaks = kept
	}

	return peaks
}

// localMaxima returns the indices of local maxima of x. Flat-topped
// maxima report the midpoint of their plateau. Boundary samples are
// never maxima.
func localMaxima(x []float64) []int {
	var peaks []int

	i := 1
	last := len(x) - 1
	for i < last {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < last && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead

				continue
			}
		}
		i++
	}

	return peaks
}

// peakProminences computes the prominence of each peak together with
// the indices of its left and right bases. A base is the lowest sample
// between the peak and the next higher sample (or the window edge).
func peakProminences(x []float64, peaks []int) (proms []float64, leftBases, rightBases []int) {
	proms = make([]float64, len(peaks))
	leftBases = make([]int, len(peaks))
	rightBases = make([]int, len(peaks))

	for k, p := range peaks {
		leftMin := x[p]
		leftBases[k] = p
		for i := p - 1; i >= 0 && x[i] <= x[p]; i-- {
			if x[i] < leftMin {
				leftMin = x[i]
				leftBases[k] = i
			}
		}

		rightMin := x[p]
		rightBases[k] = p
		for i := p + 1; i < len(x) && x[i] <= x[p]; i++ {
			if x[i] < rightMin {
				rightMin = x[i]
				rightBases[k] = i
			}
		}

		proms[k] = x[p] - math.Max(leftMin, rightMin)
	}

	return proms, leftBases, rightBases
}

// peakWidths computes each peak's width in samples at half prominence,
// interpolating linearly where the evaluation height falls between two
// samples.
func peakWidths(x []float64, peaks []int, proms []float64, leftBases, rightBases []int) []float64 {
	widths := make([]float64, len(peaks))

	for k, p := range peaks {
		h := x[p] - 0.5*proms[k]

		i := p
		for leftBases[k] < i && h < x[i] {
			i--
		}
		leftIP := float64(i)
		if x[i] < h {
			leftIP += (h - x[i]) / (x[i+1] - x[i])
		}

		i = p
		for i < rightBases[k] && h < x[i] {
			i++
		}
		rightIP := float64(i)
		if x[i] < h {
			rightIP -= (h - x[i]) / (x[i-1] - x[i])
		}

		widths[k] = rightIP - leftIP
	}

	return widths
}
