package task

// deliverer schedules a single stimulus against an absolute deadline.
// Sound onset and trigger emission are kept adjacent so the trigger
// timestamps the onset.
type deliverer struct {
	cfg  Config
	deps Deps

	targetCode int
}

// deliver waits until target time pos+TargetDelay, plays the stimulus
// when the code is the target one, and emits the trigger. It reports
// whether the stimulus was delivered; deliveries with less than
// minHeadroom of lead time are skipped.
func (d *deliverer) deliver(pos float64, code int) bool {
	wait := pos + d.cfg.TargetDelay - d.deps.Clock.Now()
	if wait <= minHeadroom {
		if wait <= 0 {
			d.deps.Logger.Warn("deadline already passed, skipping stimulus",
				"code", code, "late", -wait)
		} else {
			d.deps.Logger.Warn("not enough headroom to buffer the stimulus, skipping",
				"code", code, "headroom", wait)
		}

		return false
	}

	if code == d.targetCode {
		d.deps.Sound.Play(wait)
	}
	d.deps.Clock.Sleep(wait)
	d.deps.signal(code)

	return true
}
