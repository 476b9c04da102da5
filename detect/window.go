package detect

// Window is a fixed-capacity ring of timestamped samples. It starts
// zero-filled and always reports a full window, so early peak searches
// operate on a flat zero baseline until real data has rolled in; the
// detector's first-peak gate absorbs the artificial boundary maximum
// this produces. Pushing evicts the oldest samples FIFO.
type Window struct {
	ts   []float64
	vals []float64
	head int // index of the oldest sample
}

// NewWindow returns a zero-filled Window holding capacity samples.
// A non-positive capacity is clamped to one sample.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}

	return &Window{
		ts:   make([]float64, capacity),
		vals: make([]float64, capacity),
	}
}

// Cap returns the window capacity in samples.
func (w *Window) Cap() int {
	return len(w.vals)
}

// Push appends a batch of samples, evicting the oldest ones. ts and
// vals must have equal length; batches longer than the capacity keep
// only their most recent samples.
func (w *Window) Push(ts, vals []float64) {
	n := len(ts)
	if n > len(w.ts) {
		ts = ts[n-len(w.ts):]
		vals = vals[n-len(w.vals):]
		n = len(ts)
	}

	for i := 0; i < n; i++ {
		w.ts[w.head] = ts[i]
		w.vals[w.head] = vals[i]
		w.head++
		if w.head == len(w.ts) {
			w.head = 0
		}
	}
}

// Snapshot copies the window into tsDst and valsDst in chronological
// order. Both destinations must have length Cap.
func (w *Window) Snapshot(tsDst, valsDst []float64) {
	tail := len(w.ts) - w.head
	copy(tsDst, w.ts[w.head:])
	copy(tsDst[tail:], w.ts[:w.head])
	copy(valsDst, w.vals[w.head:])
	copy(valsDst[tail:], w.vals[:w.head])
}
