// Package sequence generates the constrained pseudo-random ordering of
// target and deviant stimulus codes used by one experimental block. The
// leading and trailing edges of a sequence hold only target codes, and
// no two deviant codes may be adjacent; a bounded swap-repair loop
// enforces the latter on the shuffled middle segment.
package sequence

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

var (
	// ErrInvalidParameter reports a generation parameter outside its
	// valid range.
	ErrInvalidParameter = errors.New("sequence: invalid parameter")
	// ErrConvergence reports that the repair loop exceeded its
	// iteration budget under the raise policy.
	ErrConvergence = errors.New("sequence: randomization could not converge")
)

// DivergencePolicy selects the behaviour when the repair loop exhausts
// its iteration budget.
type DivergencePolicy int

const (
	// DivergeWarn logs a diagnostic and returns the partially repaired
	// sequence. The result is best-effort: it may still contain
	// adjacent deviants.
	DivergeWarn DivergencePolicy = iota
	// DivergeRaise fails with ErrConvergence.
	DivergeRaise
)

// Option configures a Generator.
type Option func(*Generator)

// WithEdgePerc sets the percentage of the sequence forced to targets at
// each edge.
func WithEdgePerc(perc float64) Option {
	return func(g *Generator) {
		g.edgePerc = perc
	}
}

// WithMaxIter sets the repair loop iteration budget.
func WithMaxIter(n int) Option {
	return func(g *Generator) {
		g.maxIter = n
	}
}

// WithPolicy sets the divergence policy.
func WithPolicy(p DivergencePolicy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// WithRNG sets the random source, making generation reproducible.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithLogger sets the logger used under the warn policy.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.log = logger
	}
}

// Generator builds block sequences of target and deviant codes.
type Generator struct {
	nTarget  int
	nDeviant int
	target   int
	deviant  int
	edgePerc float64
	maxIter  int
	policy   DivergencePolicy
	rng      *rand.Rand
	log      *slog.Logger
}

// New returns a Generator emitting nTarget target codes and nDeviant
// deviant codes. Defaults: 10% edges, 500 repair iterations, warn
// policy, the global random source.
func New(nTarget, nDeviant, target, deviant int, opts ...Option) (*Generator, error) {
	g := &Generator{
		nTarget:  nTarget,
		nDeviant: nDeviant,
		target:   target,
		deviant:  deviant,
		edgePerc: 10,
		maxIter:  500,
		policy:   DivergeWarn,
		rng:      rand.New(rand.NewSource(rand.Int63())),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if g.nTarget <= 0 {
		return nil, fmt.Errorf("%w: target count must be strictly positive: %d", ErrInvalidParameter, g.nTarget)
	}
	if g.nDeviant < 0 {
		return nil, fmt.Errorf("%w: deviant count must be positive: %d", ErrInvalidParameter, g.nDeviant)
	}
	if g.edgePerc < 0 || g.edgePerc > 100 {
		return nil, fmt.Errorf("%w: edge percentage must be in [0, 100]: %g", ErrInvalidParameter, g.edgePerc)
	}
	if g.maxIter <= 0 {
		return nil, fmt.Errorf("%w: max iterations must be strictly positive: %d", ErrInvalidParameter, g.maxIter)
	}
	if g.target == g.deviant {
		return nil, fmt.Errorf("%w: target and deviant codes must differ: %d", ErrInvalidParameter, g.target)
	}
	if nEdge := g.edgeSize(); g.nTarget < 2*nEdge {
		return nil, fmt.Errorf("%w: %d targets cannot fill two edge segments of %d", ErrInvalidParameter, g.nTarget, nEdge)
	}

	return g, nil
}

// Len returns the length of every generated sequence.
func (g *Generator) Len() int {
	return g.nTarget + g.nDeviant
}

func (g *Generator) edgeSize() int {
	return int(math.Ceil(g.edgePerc * float64(g.nTarget+g.nDeviant) / 100))
}

// Generate returns one pseudo-random sequence: pure-target edges around
// a shuffled middle repaired until no two deviants are adjacent.
func (g *Generator) Generate() ([]int, error) {
	nEdge := g.edgeSize()

	middle := make([]int, 0, g.Len()-2*nEdge)
	for i := 0; i < g.nTarget-2*nEdge; i++ {
		middle = append(middle, g.target)
	}
	for i := 0; i < g.nDeviant; i++ {
		middle = append(middle, g.deviant)
	}
	g.rng.Shuffle(len(middle), func(i, j int) {
		middle[i], middle[j] = middle[j], middle[i]
	})

	converged := false
	var groups []run
	for iter := 0; ; iter++ {
		groups = runsOf(middle)

		if maxDeviantRun(groups, g.deviant) <= 1 {
			converged = true

			break
		}

		if g.maxIter < iter {
			if g.policy == DivergeRaise {
				return nil, ErrConvergence
			}
			g.log.Warn("sequence randomization could not converge, returning best effort")

			break
		}

		g.repair(middle, groups)
	}

	// Sanity checks hold only on the converged path; the warn path
	// returns the sequence as-is.
	if converged {
		for i := 1; i < len(middle); i++ {
			if middle[i-1] == g.deviant && middle[i] == g.deviant {
				return nil, fmt.Errorf("sequence: adjacent deviants after convergence at %d", i)
			}
		}
	}

	seq := make([]int, 0, g.Len())
	for i := 0; i < nEdge; i++ {
		seq = append(seq, g.target)
	}
	seq = append(seq, middle...)
	for i := 0; i < nEdge; i++ {
		seq = append(seq, g.target)
	}

	return seq, nil
}

// repair swaps the center of the longest target run with the first
// element of the first offending deviant run.
func (g *Generator) repair(middle []int, groups []run) {
	for _, grp := range groups {
		if grp.code == g.target || grp.length == 1 {
			continue
		}

		longest := 0
		for i, other := range groups {
			if other.code == g.target && other.length > groups[longest].lengthIfTarget(g.target) {
				longest = i
			}
		}

		posTarget := groups[longest].start + groups[longest].length/2
		posDeviant := grp.start
		middle[posTarget], middle[posDeviant] = middle[posDeviant], middle[posTarget]

		return
	}
}

// run is a maximal group of consecutive identical codes.
type run struct {
	code   int
	start  int
	length int
}

func (r run) lengthIfTarget(target int) int {
	if r.code != target {
		return 0
	}

	return r.length
}

// runsOf splits xs into maximal runs of identical codes.
func runsOf(xs []int) []run {
	var out []run
	for i := 0; i < len(xs); {
		j := i + 1
		for j < len(xs) && xs[j] == xs[i] {
			j++
		}
		out = append(out, run{code: xs[i], start: i, length: j - i})
		i = j
	}

	return out
}

// maxDeviantRun returns the length of the longest run of deviant codes.
func maxDeviantRun(groups []run, deviant int) int {
	longest := 0
	for _, grp := range groups {
		if grp.code == deviant && grp.length > longest {
			longest = grp.length
		}
	}

	return longest
}
