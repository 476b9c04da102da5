package task

import (
	"fmt"
	"math"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/detect"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stats/timing"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

// Cardiac steers stimulus onsets toward target times drawn from a delay
// pool while still locking each delivery onto a real heartbeat. Once
// the heart-rate estimate is available, a beat is skipped when the
// predicted next beat lands closer to the pending target time.
type Cardiac struct {
	*block
	det  *detect.Detector
	hrm  *HeartRateMonitor
	pool *timing.Pool

	peaks []float64
}

// NewCardiac returns a cardiac block detecting heartbeats on the named
// channel of src. Target delays are drawn from pool, typically built
// from the inter-peak delays of a prior synchronous block.
func NewCardiac(cfg Config, deps Deps, src stream.Source, channel string, pool *timing.Pool) (*Cardiac, error) {
	b, err := newBlock(CardiacBlock, cfg, deps)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: nil delay pool", ErrInvalidParameter)
	}

	det, err := detect.New(src, channel,
		detect.WithBufferDuration(cfg.BufferDuration),
		detect.WithLogger(b.deps.Logger))
	if err != nil {
		return nil, err
	}

	hrm, err := NewHeartRateMonitor(heartRateWindow)
	if err != nil {
		return nil, err
	}

	return &Cardiac{block: b, det: det, hrm: hrm, pool: pool}, nil
}

// Run executes the cardiac block. It returns once every sequence
// element has been delivered on a heartbeat.
func (c *Cardiac) Run() error {
	if err := c.begin(); err != nil {
		return err
	}

	c.det.Prefill(c.deps.Clock)
	c.start()

	var (
		target    float64
		hasTarget bool
		lastPeak  float64
		hasLast   bool
		drawn     bool
	)

	counter := 0
	for counter < len(c.seq) {
		c.det.Update()
		pos, ok := c.det.NewPeak()
		if !ok {
			c.deps.Clock.Sleep(pollInterval)

			continue
		}
		c.hrm.AddHeartbeat(pos)

		if hasTarget && c.hrm.Initialized() {
			// The estimate cannot fail once the monitor is initialized.
			delay, _ := c.hrm.MeanDelay()
			if math.Abs(pos+delay-target) < math.Abs(pos-target) {
				c.deps.Logger.Debug("predicted next beat lands closer to the target, skipping",
					"peak", pos, "target", target, "mean_delay", delay)
				lastPeak, hasLast = pos, true

				continue
			}
		}

		if c.del.deliver(pos, c.seq[counter]) {
			c.peaks = append(c.peaks, pos)
			counter++

			var draw float64
			if drawn && hasLast {
				draw = c.pool.DrawClosest(pos - lastPeak)
			} else {
				draw = c.pool.Draw()
				drawn = true
			}
			target, hasTarget = pos+draw, true
		}

		lastPeak, hasLast = pos, true
	}

	c.finish()

	return nil
}

// Peaks returns a copy of the timestamps of the heartbeats that carried
// a delivered stimulus.
func (c *Cardiac) Peaks() []float64 {
	out := make([]float64, len(c.peaks))
	copy(out, c.peaks)

	return out
}
