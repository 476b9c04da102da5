// Command ecgstream publishes a simulated physiological signal over
// NATS, framed the way the acquisition front-end frames real
// recordings. It stands in for the amplifier during development and
// rehearsals.
//
// Usage:
//
//	ecgstream [flags]
//
// Examples:
//
//	ecgstream
//	ecgstream -wave resp -subject resp.wave
//	ecgstream -nats nats://10.0.0.5:4222 -fs 512 -rate 64
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
)

func main() {
	var (
		natsURL = flag.String("nats", "nats://127.0.0.1:4222", "NATS server URL")
		subject = flag.String("subject", "cas.signal", "publication subject")
		wave    = flag.String("wave", "ecg", "waveform: ecg or resp")
		fs      = flag.Float64("fs", 512, "sampling rate in Hz")
		rate    = flag.Float64("rate", 0, "events per minute (0 keeps the waveform default)")
		noise   = flag.Float64("noise", 0.02, "additive noise fraction")
		batch   = flag.Duration("batch", 20*time.Millisecond, "publication interval")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	waveform := stream.WaveECG
	channel := "ECG"
	switch *wave {
	case "ecg":
	case "resp":
		waveform = stream.WaveRespiration
		channel = "RESP"
	default:
		fmt.Fprintf(os.Stderr, "unknown waveform %q (want ecg or resp)\n", *wave)
		os.Exit(2)
	}

	nc, err := stream.Connect(*natsURL)
	if err != nil {
		log.Error("connecting to NATS", "url", *natsURL, "err", err)
		os.Exit(1)
	}
	defer nc.Drain()

	pub, err := stream.NewPublisher(nc, *subject, 1)
	if err != nil {
		log.Error("creating publisher", "err", err)
		os.Exit(1)
	}

	opts := []stream.SimOption{
		stream.WithSimSampleRate(*fs),
		stream.WithSimNoise(*noise),
		stream.WithSimSeed(time.Now().UnixNano()),
		stream.WithSimChannelName(channel),
	}
	if *rate > 0 {
		opts = append(opts, stream.WithSimEventRate(*rate))
	}
	sim := stream.NewSimulator(clock.NewReal(), waveform, opts...)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	log.Info("streaming", "subject", *subject, "wave", *wave, "fs", *fs)

	ticker := time.NewTicker(*batch)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			log.Info("stopping")

			return
		case <-ticker.C:
			ts, data := sim.Pull()
			if len(ts) == 0 {
				continue
			}
			if err := pub.Publish(ts, data); err != nil {
				log.Error("publishing frame", "err", err)
			}
		}
	}
}
