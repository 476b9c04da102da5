package task

import (
	"fmt"
	"regexp"
	"strconv"
)

// Timing constants shared by every block type, in seconds.
const (
	// minHeadroom is the minimum time needed to buffer and play a
	// sound; deliveries with less are skipped.
	minHeadroom = 0.015
	// soundTailFactor scales the wait for the last sound to finish
	// before the stop trigger.
	soundTailFactor = 1.1
	// heartRateWindow is the number of beats backing the rolling
	// inter-beat estimate of the cardiac block.
	heartRateWindow = 10
	// pollInterval is the pause between detector polls while a
	// peak-locked block waits for the next peak.
	pollInterval = 0.001
)

// Type identifies a block type.
type Type int

const (
	BaselineBlock Type = iota
	IsochronousBlock
	AsynchronousBlock
	SynchronousBlock
	CardiacBlock
)

// String returns the block type name.
func (t Type) String() string {
	switch t {
	case BaselineBlock:
		return "baseline"
	case IsochronousBlock:
		return "isochronous"
	case AsynchronousBlock:
		return "asynchronous"
	case SynchronousBlock:
		return "synchronous"
	case CardiacBlock:
		return "cardiac"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// StartStop holds the trigger codes bracketing one block.
type StartStop struct {
	Start int
	Stop  int
}

// stimulusKeyRE validates the symbolic names of the stimulus trigger
// table: a role followed by the tone frequency in Hz.
var stimulusKeyRE = regexp.MustCompile(`^(target|deviant)/[0-9]+(\.[0-9]+)?$`)

// StimulusKey builds the trigger-table key for a role and frequency.
func StimulusKey(role string, frequency float64) string {
	return role + "/" + strconv.FormatFloat(frequency, 'f', -1, 64)
}

// Config is the explicit, validated configuration shared by every
// block. It is constructed once and passed by value; there is no
// process-wide mutable state.
type Config struct {
	// Triggers maps stimulus names ("target/<freq>", "deviant/<freq>")
	// to trigger codes.
	Triggers map[string]int
	// Blocks maps each block type to its start/stop trigger codes.
	Blocks map[Type]StartStop

	// SoundFrequency selects the target/deviant pair in Triggers, Hz.
	SoundFrequency float64
	// SoundDuration is the stimulus tone duration in seconds.
	SoundDuration float64
	// TargetDelay is the scheduling offset between a (detected or
	// scheduled) event and its stimulus, in seconds.
	TargetDelay float64
	// BufferDuration is the detector window duration in seconds; the
	// non-detector blocks sleep this long at start so block durations
	// stay comparable.
	BufferDuration float64
	// EdgePerc is the percentage of each sequence edge forced to
	// target codes.
	EdgePerc float64
	// OutlierPerc bounds the percentile band used when trimming
	// inter-peak delays.
	OutlierPerc float64
	// InterBlockDelay separates consecutive blocks of a session, in
	// seconds.
	InterBlockDelay float64

	// NTarget and NDeviant size every block sequence.
	NTarget  int
	NDeviant int
}

// DefaultConfig returns the standard block configuration.
func DefaultConfig() Config {
	return Config{
		Triggers: map[string]int{
			StimulusKey("target", 1000):  1,
			StimulusKey("deviant", 1000): 2,
		},
		Blocks: map[Type]StartStop{
			BaselineBlock:     {Start: 4, Stop: 5},
			SynchronousBlock:  {Start: 8, Stop: 9},
			IsochronousBlock:  {Start: 16, Stop: 17},
			AsynchronousBlock: {Start: 32, Stop: 33},
			CardiacBlock:      {Start: 64, Stop: 65},
		},
		SoundFrequency:  1000,
		SoundDuration:   0.2,
		TargetDelay:     0.25,
		BufferDuration:  4,
		EdgePerc:        10,
		OutlierPerc:     10,
		InterBlockDelay: 5,
		NTarget:         50,
		NDeviant:        10,
	}
}

// Validate checks the configuration once, before any block starts.
func (c Config) Validate() error {
	if len(c.Triggers) == 0 {
		return fmt.Errorf("%w: empty stimulus trigger table", ErrConfiguration)
	}

	seen := make(map[int]string, len(c.Triggers)+2*len(c.Blocks))
	for name, code := range c.Triggers {
		if !stimulusKeyRE.MatchString(name) {
			return fmt.Errorf("%w: stimulus name %q does not match target|deviant/<frequency>", ErrConfiguration, name)
		}
		if err := c.checkCode(seen, name, code); err != nil {
			return err
		}
	}

	for _, typ := range []Type{BaselineBlock, IsochronousBlock, AsynchronousBlock, SynchronousBlock, CardiacBlock} {
		ss, ok := c.Blocks[typ]
		if !ok {
			return fmt.Errorf("%w: missing start/stop codes for the %s block", ErrConfiguration, typ)
		}
		if err := c.checkCode(seen, typ.String()+"/start", ss.Start); err != nil {
			return err
		}
		if err := c.checkCode(seen, typ.String()+"/stop", ss.Stop); err != nil {
			return err
		}
	}

	if _, err := c.TargetCode(); err != nil {
		return err
	}
	if _, err := c.DeviantCode(); err != nil {
		return err
	}

	switch {
	case c.SoundDuration <= 0:
		return fmt.Errorf("%w: sound duration must be > 0: %g", ErrConfiguration, c.SoundDuration)
	case c.TargetDelay <= 0:
		return fmt.Errorf("%w: target delay must be > 0: %g", ErrConfiguration, c.TargetDelay)
	case c.BufferDuration <= 0:
		return fmt.Errorf("%w: buffer duration must be > 0: %g", ErrConfiguration, c.BufferDuration)
	case c.EdgePerc < 0 || c.EdgePerc > 100:
		return fmt.Errorf("%w: edge percentage must be in [0, 100]: %g", ErrConfiguration, c.EdgePerc)
	case c.OutlierPerc < 0 || c.OutlierPerc > 50:
		return fmt.Errorf("%w: outlier percentage must be in [0, 50]: %g", ErrConfiguration, c.OutlierPerc)
	case c.InterBlockDelay < 0:
		return fmt.Errorf("%w: inter-block delay must be >= 0: %g", ErrConfiguration, c.InterBlockDelay)
	case c.NTarget <= 0:
		return fmt.Errorf("%w: target count must be > 0: %d", ErrConfiguration, c.NTarget)
	case c.NDeviant < 0:
		return fmt.Errorf("%w: deviant count must be >= 0: %d", ErrConfiguration, c.NDeviant)
	}

	return nil
}

func (c Config) checkCode(seen map[int]string, name string, code int) error {
	if code < 0 || 255 < code {
		return fmt.Errorf("%w: trigger code for %q must be in [0, 255]: %d", ErrConfiguration, name, code)
	}
	if other, dup := seen[code]; dup {
		return fmt.Errorf("%w: trigger code %d assigned to both %q and %q", ErrConfiguration, code, other, name)
	}
	seen[code] = name

	return nil
}

// TargetCode returns the trigger code of the target stimulus at the
// configured sound frequency.
func (c Config) TargetCode() (int, error) {
	return c.stimulusCode("target")
}

// DeviantCode returns the trigger code of the deviant stimulus at the
// configured sound frequency.
func (c Config) DeviantCode() (int, error) {
	return c.stimulusCode("deviant")
}

func (c Config) stimulusCode(role string) (int, error) {
	key := StimulusKey(role, c.SoundFrequency)
	code, ok := c.Triggers[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing trigger key %q", ErrConfiguration, key)
	}

	return code, nil
}
