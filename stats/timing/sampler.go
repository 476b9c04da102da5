package timing

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler draws inter-event delays with replacement from the
// outlier-trimmed band of a source distribution. Every drawn value is
// one of the surviving source values, so all draws lie inside the band.
type Sampler struct {
	band []float64
	rng  *rand.Rand
}

// NewSampler trims delays to the [outlierPerc, 100-outlierPerc]
// percentile band and returns a Sampler over the survivors. Fewer than
// two surviving values fail with ErrInsufficientData.
func NewSampler(delays []float64, outlierPerc float64, rng *rand.Rand) (*Sampler, error) {
	if len(delays) == 0 {
		return nil, fmt.Errorf("%w: no delays provided", ErrInsufficientData)
	}

	band, err := TrimOutliers(delays, outlierPerc)
	if err != nil {
		return nil, err
	}
	if len(band) < 2 {
		return nil, fmt.Errorf("%w: %d of %d delays survive trimming", ErrInsufficientData, len(band), len(delays))
	}

	return &Sampler{band: band, rng: rng}, nil
}

// Draw returns n delays drawn uniformly with replacement.
func (s *Sampler) Draw(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.band[s.rng.Intn(len(s.band))]
	}

	return out
}

// Band returns the surviving delay values backing the sampler.
func (s *Sampler) Band() []float64 {
	out := make([]float64, len(s.band))
	copy(out, s.band)

	return out
}

// Pool draws inter-event delays without replacement. The first draw is
// uniform; subsequent draws pick the entry closest to an observed gap.
// When the pool runs empty it refills by re-trimming the source.
type Pool struct {
	source      []float64
	outlierPerc float64
	trim        bool
	remaining   []float64
	rng         *rand.Rand
}

// NewPool trims delays to the [outlierPerc, 100-outlierPerc] percentile
// band and returns a Pool over the survivors. Fewer than two surviving
// values fail with ErrInsufficientData.
func NewPool(delays []float64, outlierPerc float64, rng *rand.Rand) (*Pool, error) {
	if len(delays) == 0 {
		return nil, fmt.Errorf("%w: no delays provided", ErrInsufficientData)
	}

	band, err := TrimOutliers(delays, outlierPerc)
	if err != nil {
		return nil, err
	}
	if len(band) < 2 {
		return nil, fmt.Errorf("%w: %d of %d delays survive trimming", ErrInsufficientData, len(band), len(delays))
	}

	p := &Pool{source: delays, outlierPerc: outlierPerc, trim: true, rng: rng}
	p.refill()

	return p, nil
}

// NewRawPool returns a Pool over delays without outlier trimming. It is
// the degraded fallback used when trimming leaves too little data.
func NewRawPool(delays []float64, rng *rand.Rand) (*Pool, error) {
	if len(delays) == 0 {
		return nil, fmt.Errorf("%w: no delays provided", ErrInsufficientData)
	}

	p := &Pool{source: delays, rng: rng}
	p.refill()

	return p, nil
}

func (p *Pool) refill() {
	if p.trim {
		// The trim succeeded at construction time; it cannot fail here.
		band, _ := TrimOutliers(p.source, p.outlierPerc)
		p.remaining = band

		return
	}

	p.remaining = make([]float64, len(p.source))
	copy(p.remaining, p.source)
}

// Draw removes and returns a uniformly chosen entry.
func (p *Pool) Draw() float64 {
	if len(p.remaining) == 0 {
		p.refill()
	}

	return p.take(p.rng.Intn(len(p.remaining)))
}

// DrawClosest removes and returns the entry whose value is closest to
// gap, the observed delay between the two most recent events.
func (p *Pool) DrawClosest(gap float64) float64 {
	if len(p.remaining) == 0 {
		p.refill()
	}

	best := 0
	bestDist := math.Abs(p.remaining[0] - gap)
	for i, v := range p.remaining[1:] {
		if d := math.Abs(v - gap); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}

	return p.take(best)
}

// Len returns the number of entries left before the next refill.
func (p *Pool) Len() int {
	return len(p.remaining)
}

func (p *Pool) take(i int) float64 {
	v := p.remaining[i]
	p.remaining[i] = p.remaining[len(p.remaining)-1]
	p.remaining = p.remaining[:len(p.remaining)-1]

	return v
}
