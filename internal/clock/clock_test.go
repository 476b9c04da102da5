package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualSleepAdvances(t *testing.T) {
	c := NewVirtual(10)
	c.Sleep(0.5)
	c.Sleep(0.25)
	assert.Equal(t, 10.75, c.Now())
	assert.Equal(t, []float64{0.5, 0.25}, c.Slept())
}

func TestVirtualIgnoresNonPositiveSleep(t *testing.T) {
	c := NewVirtual(0)
	c.Sleep(0)
	c.Sleep(-1)
	assert.Equal(t, 0.0, c.Now())
	assert.Empty(t, c.Slept())
}

func TestVirtualAdvance(t *testing.T) {
	c := NewVirtual(0)
	c.Advance(2)
	c.Advance(-1) // ignored
	assert.Equal(t, 2.0, c.Now())
	assert.Empty(t, c.Slept())
}

func TestRealSleepReachesTarget(t *testing.T) {
	c := NewReal()
	start := c.Now()
	c.Sleep(0.002)
	if got := c.Now() - start; got < 0.002 {
		t.Fatalf("slept %.6f s, want >= 0.002 s", got)
	}
}

func TestRealNowMonotonic(t *testing.T) {
	c := NewReal()
	prev := c.Now()
	for i := 0; i < 100; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("clock went backwards: %.9f < %.9f", now, prev)
		}
		prev = now
	}
}
