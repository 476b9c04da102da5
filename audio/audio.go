// Package audio provides the sound-playback capability used by the
// stimulus blocks: pure-tone synthesis with a Hann envelope, an
// oto-backed playback sink, and a recording mock for tests. Playback is
// fire-and-forget; the scheduler never waits on the audio device.
package audio

import "math"

// Player schedules the playback of one prepared stimulus sound.
type Player interface {
	// Play starts playback `in` seconds from now and returns
	// immediately. Non-positive delays start playback at once.
	Play(in float64)
}

// Tone synthesizes a pure sine tone of the given frequency and duration
// shaped by a Hann envelope, which removes the onset/offset clicks of a
// rectangular tone. Samples are in [-1, 1].
func Tone(frequency, duration, sampleRate float64) []float64 {
	n := int(math.Round(duration * sampleRate))
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	step := 2 * math.Pi * frequency / sampleRate
	for i := range out {
		out[i] = math.Sin(step*float64(i)) * hann(i, n)
	}

	return out
}

// hann evaluates the n-point Hann window at index i.
func hann(i, n int) float64 {
	if n == 1 {
		return 1
	}

	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}
