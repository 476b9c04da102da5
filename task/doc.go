// Package task orchestrates the experimental blocks: baseline,
// isochronous, asynchronous, synchronous-respiration and
// synchronous-cardiac. Each block runs as one cooperative loop
// (Idle -> Running -> Complete) emitting its start trigger, delivering
// sound/trigger pairs against its stimulus sequence, and emitting its
// stop trigger. A Session carries the artifacts shared across blocks:
// the delivered peak timestamps of a synchronous block and the last
// valid delay derivation used by the asynchronous and cardiac
// fallbacks.
package task
