package sequence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	target  = 1
	deviant = 2
)

func countCode(seq []int, code int) int {
	n := 0
	for _, c := range seq {
		if c == code {
			n++
		}
	}

	return n
}

func TestGenerateInvariants(t *testing.T) {
	// Several seeds, so the shuffle and the repair loop are exercised
	// on different starting orders.
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, err := New(50, 10, target, deviant, WithRNG(rng))
		require.NoError(t, err)

		seq, err := g.Generate()
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, seq, 60)
		assert.Equal(t, 50, countCode(seq, target), "seed %d", seed)
		assert.Equal(t, 10, countCode(seq, deviant), "seed %d", seed)

		// 10% edges hold only targets.
		for i := 0; i < 6; i++ {
			assert.Equal(t, target, seq[i], "seed %d: leading edge", seed)
			assert.Equal(t, target, seq[len(seq)-1-i], "seed %d: trailing edge", seed)
		}

		for i := 1; i < len(seq); i++ {
			if seq[i-1] == deviant && seq[i] == deviant {
				t.Fatalf("seed %d: adjacent deviants at %d", seed, i)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := mustGen(t, 42).Generate()
	require.NoError(t, err)
	second, err := mustGen(t, 42).Generate()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := mustGen(t, 43).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func mustGen(t *testing.T, seed int64) *Generator {
	t.Helper()
	g, err := New(50, 10, target, deviant, WithRNG(rand.New(rand.NewSource(seed))))
	require.NoError(t, err)

	return g
}

func TestGenerateRaisesOnDivergence(t *testing.T) {
	// Ten deviants cannot be separated by four targets; the repair loop
	// can never converge.
	g, err := New(4, 10, target, deviant,
		WithEdgePerc(0),
		WithMaxIter(5),
		WithPolicy(DivergeRaise),
		WithRNG(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	_, err = g.Generate()
	assert.ErrorIs(t, err, ErrConvergence)
}

func TestGenerateWarnsOnDivergence(t *testing.T) {
	g, err := New(4, 10, target, deviant,
		WithEdgePerc(0),
		WithMaxIter(5),
		WithRNG(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	seq, err := g.Generate()
	require.NoError(t, err, "warn policy must return a best-effort sequence")
	assert.Len(t, seq, 14)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		nTarget  int
		nDeviant int
		tgt, dev int
		opts     []Option
	}{
		{"zero targets", 0, 5, target, deviant, nil},
		{"negative deviants", 10, -1, target, deviant, nil},
		{"equal codes", 10, 2, 1, 1, nil},
		{"edge percentage out of range", 10, 2, target, deviant, []Option{WithEdgePerc(120)}},
		{"zero max iterations", 10, 2, target, deviant, []Option{WithMaxIter(0)}},
		{"targets cannot fill the edges", 2, 50, target, deviant, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.nTarget, tc.nDeviant, tc.tgt, tc.dev, tc.opts...)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestLen(t *testing.T) {
	g, err := New(50, 10, target, deviant)
	require.NoError(t, err)
	assert.Equal(t, 60, g.Len())
}
