package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	otoSampleRate = 44100
	otoChannels   = 2
	otoDepthBytes = 2 // 16-bit signed little-endian
)

// OtoPlayer plays a pre-rendered tone through the system audio device.
// The PCM data is rendered once at construction; Play only hands a
// reader to a fresh device player, keeping the scheduling path cheap.
//
// oto allows a single context per process, so construct at most one
// OtoPlayer chain and reuse it across blocks.
type OtoPlayer struct {
	ctx *oto.Context
	pcm []byte
}

// NewOtoPlayer prepares a Hann-enveloped tone of the given frequency
// (Hz), duration (s) and volume (0-1) for playback.
func NewOtoPlayer(frequency, duration, volume float64) (*OtoPlayer, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("audio: frequency must be > 0: %g", frequency)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("audio: duration must be > 0: %g", duration)
	}
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("audio: volume must be in [0, 1]: %g", volume)
	}

	ctx, ready, err := oto.NewContext(otoSampleRate, otoChannels, otoDepthBytes)
	if err != nil {
		return nil, fmt.Errorf("audio: opening output device: %w", err)
	}
	<-ready

	return &OtoPlayer{
		ctx: ctx,
		pcm: renderPCM(Tone(frequency, duration, otoSampleRate), volume),
	}, nil
}

// Play schedules playback after the given delay and returns at once.
func (p *OtoPlayer) Play(in float64) {
	if in <= 0 {
		p.start()

		return
	}

	time.AfterFunc(time.Duration(in*float64(time.Second)), p.start)
}

func (p *OtoPlayer) start() {
	p.ctx.NewPlayer(bytes.NewReader(p.pcm)).Play()
}

// renderPCM converts mono samples in [-1, 1] to interleaved 16-bit
// stereo little-endian PCM at the given volume.
func renderPCM(samples []float64, volume float64) []byte {
	out := make([]byte, 0, len(samples)*otoChannels*otoDepthBytes)
	for _, s := range samples {
		v := int16(s * volume * 32767)
		lo, hi := byte(v), byte(uint16(v)>>8)
		out = append(out, lo, hi, lo, hi)
	}

	return out
}
