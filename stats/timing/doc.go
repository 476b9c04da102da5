// Package timing provides the inter-event delay statistics used by the
// stimulus schedulers: percentile computation, consecutive differences,
// outlier trimming, and the two resampling strategies (Sampler draws
// with replacement, Pool draws without replacement).
package timing
