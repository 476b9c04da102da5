// Package detect finds physiological peaks (cardiac R-peaks,
// respiration peaks) in a rolling window of biosignal samples pulled
// from a stream.Source. The window is linearly detrended before each
// search, candidate maxima are filtered by a height percentile and
// optional prominence/width constraints, and reported peaks are
// debounced by a refractory period.
package detect
