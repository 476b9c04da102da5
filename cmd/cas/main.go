// Command cas runs a closed-loop stimulation session: it pulls a
// biosignal from NATS (or simulates one), locks auditory stimuli onto
// detected peaks block by block, and emits trigger codes marking every
// event.
//
// Usage:
//
//	cas [flags]
//
// Examples:
//
//	cas -sim
//	cas -blocks baseline,synchronous,isochronous
//	cas -nats nats://10.0.0.5:4222 -subject cas.signal -channel ECG -fs 512
//	cas -sim -mute -blocks synchronous,cardiac
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/audio"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/internal/clock"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/stream"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/task"
	"github.com/fcbg-platforms/eeg-cardio-audio-sleep-sub000/trigger"
)

// throttleDelay is the settle time of hardware-style trigger lines.
const throttleDelay = 0.01

func main() {
	var (
		natsURL  = flag.String("nats", "nats://127.0.0.1:4222", "NATS server URL")
		subject  = flag.String("subject", "cas.signal", "signal subject")
		trigSubj = flag.String("triggers", "cas.triggers", "trigger subject")
		channel  = flag.String("channel", "ECG", "signal channel to track")
		fs       = flag.Float64("fs", 512, "sampling rate of the NATS stream in Hz")
		sim      = flag.Bool("sim", false, "simulate the signal instead of using NATS")
		blocks   = flag.String("blocks", "baseline,synchronous,isochronous,asynchronous", "comma-separated block order")
		baseline = flag.Float64("baseline", task.DefaultBaselineDuration, "baseline duration in seconds")
		volume   = flag.Float64("volume", 0.8, "stimulus volume in [0, 1]")
		mute     = flag.Bool("mute", false, "suppress audio output")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	order, err := parseBlocks(*blocks)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := task.DefaultConfig()
	clk := clock.NewReal()
	deps := task.Deps{Clock: clk, Logger: log}

	if !*mute {
		player, err := audio.NewOtoPlayer(cfg.SoundFrequency, cfg.SoundDuration, *volume)
		if err != nil {
			log.Error("opening audio output", "err", err)
			os.Exit(1)
		}
		deps.Sound = player
	}

	var src stream.Source
	if *sim {
		src = stream.NewSimulator(clk, stream.WaveECG,
			stream.WithSimSampleRate(*fs),
			stream.WithSimSeed(time.Now().UnixNano()),
			stream.WithSimChannelName(*channel))
		deps.Trigger = trigger.NewSlog(log)
	} else {
		nc, err := stream.Connect(*natsURL)
		if err != nil {
			log.Error("connecting to NATS", "url", *natsURL, "err", err)
			os.Exit(1)
		}
		defer nc.Drain()

		natsSrc, err := stream.NewNATSSource(nc, *subject, *fs, []string{*channel})
		if err != nil {
			log.Error("subscribing to signal", "subject", *subject, "err", err)
			os.Exit(1)
		}
		defer natsSrc.Close()
		src = natsSrc

		sink, err := trigger.NewNATS(nc, *trigSubj)
		if err != nil {
			log.Error("creating trigger sink", "err", err)
			os.Exit(1)
		}
		throttled, err := trigger.NewThrottle(sink, clk, throttleDelay)
		if err != nil {
			log.Error("creating trigger sink", "err", err)
			os.Exit(1)
		}
		deps.Trigger = throttled
	}

	session, err := task.NewSession(cfg, deps, src, *channel,
		task.WithBaselineDuration(*baseline))
	if err != nil {
		log.Error("creating session", "err", err)
		os.Exit(1)
	}

	log.Info("session starting", "blocks", *blocks, "channel", *channel)
	if err := session.Run(order); err != nil {
		log.Error("session aborted", "err", err)
		os.Exit(1)
	}
	log.Info("session complete")
}

// parseBlocks maps the comma-separated block names to block types.
func parseBlocks(list string) ([]task.Type, error) {
	names := map[string]task.Type{
		"baseline":     task.BaselineBlock,
		"isochronous":  task.IsochronousBlock,
		"asynchronous": task.AsynchronousBlock,
		"synchronous":  task.SynchronousBlock,
		"cardiac":      task.CardiacBlock,
	}

	var order []task.Type
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		typ, ok := names[name]
		if !ok {
			return nil, fmt.Errorf("unknown block %q", name)
		}
		order = append(order, typ)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no blocks requested")
	}

	return order, nil
}
