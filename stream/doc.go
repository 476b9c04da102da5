// Package stream defines the pull-based biosignal source contract and
// its concrete implementations: a NATS-backed source and publisher for
// live acquisition, a deterministic physiological-signal simulator, and
// a slice-backed source for tests. Sources are pulled, never pushed
// into the pipeline, so the detector loop owns all re-entrancy.
package stream
