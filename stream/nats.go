package stream

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect opens a NATS connection with the reconnect behaviour expected
// of a long-running acquisition session.
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(
		url,
		nats.Name("cardio-audio-sleep"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}

// Wire format: each message carries a batch of samples. A sample is
// 8 bytes of float64 little-endian timestamp followed by one float64
// per channel.

// sampleSize returns the encoded size in bytes of one sample.
func sampleSize(channels int) int {
	return 8 * (1 + channels)
}

// EncodeFrame encodes a batch of samples for publication. ts holds one
// timestamp per sample; data holds one slice per channel, aligned with
// ts.
func EncodeFrame(ts []float64, data [][]float64) ([]byte, error) {
	for _, ch := range data {
		if len(ch) != len(ts) {
			return nil, fmt.Errorf("stream: channel length %d does not match %d timestamps", len(ch), len(ts))
		}
	}

	buf := make([]byte, 0, len(ts)*sampleSize(len(data)))
	for i, t := range ts {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t))
		for _, ch := range data {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(ch[i]))
		}
	}

	return buf, nil
}

// DecodeFrame decodes a published batch into timestamps and per-channel
// values. Trailing partial samples are rejected.
func DecodeFrame(payload []byte, channels int) (ts []float64, data [][]float64, err error) {
	size := sampleSize(channels)
	if len(payload)%size != 0 {
		return nil, nil, fmt.Errorf("stream: frame of %d bytes is not a multiple of the %d-byte sample size", len(payload), size)
	}

	n := len(payload) / size
	ts = make([]float64, n)
	data = make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, n)
	}

	off := 0
	for i := 0; i < n; i++ {
		ts[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off:]))
		off += 8
		for c := 0; c < channels; c++ {
			data[c][i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off:]))
			off += 8
		}
	}

	return ts, data, nil
}

// NATSSource is a Source fed by a NATS subject. Arriving frames are
// buffered on the subscription callback; Pull drains the buffer without
// blocking.
type NATSSource struct {
	rate     float64
	channels []string
	sub      *nats.Subscription

	mu   sync.Mutex
	ts   []float64
	data [][]float64
}

// NewNATSSource subscribes to subject on nc. The sample rate and
// channel labels describe the stream being published; constructing with
// no channels fails with ErrNoSource before anything is pulled.
func NewNATSSource(nc *nats.Conn, subject string, sampleRate float64, channels []string) (*NATSSource, error) {
	if nc == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrNoSource)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels declared for subject %q", ErrNoSource, subject)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("stream: sample rate must be > 0: %g", sampleRate)
	}

	s := &NATSSource{
		rate:     sampleRate,
		channels: append([]string(nil), channels...),
		data:     make([][]float64, len(channels)),
	}

	sub, err := nc.Subscribe(subject, s.onFrame)
	if err != nil {
		return nil, fmt.Errorf("stream: subscribing to %q: %w", subject, err)
	}
	s.sub = sub

	return s, nil
}

func (s *NATSSource) onFrame(msg *nats.Msg) {
	ts, data, err := DecodeFrame(msg.Data, len(s.channels))
	if err != nil {
		return // drop malformed frames
	}

	s.mu.Lock()
	s.ts = append(s.ts, ts...)
	for c := range data {
		s.data[c] = append(s.data[c], data[c]...)
	}
	s.mu.Unlock()
}

// SampleRate returns the declared sampling rate in Hz.
func (s *NATSSource) SampleRate() float64 {
	return s.rate
}

// ChannelNames returns the declared channel labels.
func (s *NATSSource) ChannelNames() []string {
	return append([]string(nil), s.channels...)
}

// Pull drains and returns all samples buffered since the last call.
func (s *NATSSource) Pull() ([]float64, [][]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ts) == 0 {
		return nil, nil
	}

	ts := s.ts
	data := make([][]float64, len(s.data))
	copy(data, s.data)

	s.ts = nil
	s.data = make([][]float64, len(s.channels))

	return ts, data
}

// Close unsubscribes from the subject.
func (s *NATSSource) Close() error {
	if s.sub == nil {
		return nil
	}

	return s.sub.Unsubscribe()
}

// Publisher publishes sample frames to a NATS subject, the counterpart
// of NATSSource for acquisition front-ends and simulators.
type Publisher struct {
	nc       *nats.Conn
	subject  string
	channels int
}

// NewPublisher returns a Publisher for the given subject.
func NewPublisher(nc *nats.Conn, subject string, channels int) (*Publisher, error) {
	if nc == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrNoSource)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("stream: channel count must be > 0: %d", channels)
	}

	return &Publisher{nc: nc, subject: subject, channels: channels}, nil
}

// Publish encodes and publishes one batch of samples.
func (p *Publisher) Publish(ts []float64, data [][]float64) error {
	if len(data) != p.channels {
		return fmt.Errorf("stream: got %d channels, want %d", len(data), p.channels)
	}

	payload, err := EncodeFrame(ts, data)
	if err != nil {
		return err
	}

	return p.nc.Publish(p.subject, payload)
}
