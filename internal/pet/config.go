package pet

import (
	"fmt"
	"time"
)

// Duration is a time.Duration written as a string ("1.2s") in config files.
type Duration struct {
	time.Duration
}

func D(d time.Duration) Duration {
	return Duration{Duration: d}
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Range is an inclusive span of delays. Picks are uniform at millisecond
// granularity.
type Range struct {
	Min Duration `toml:"min"`
	Max Duration `toml:"max"`
}

func Between(min, max time.Duration) Range {
	return Range{Min: D(min), Max: D(max)}
}

func (r Range) Pick(rnd Random) time.Duration {
	lo := r.Min.Milliseconds()
	hi := r.Max.Milliseconds()
	if hi <= lo {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+int64(rnd.Intn(int(hi-lo+1)))) * time.Millisecond
}

func (r Range) normalized(def Range) Range {
	if r.Min.Duration == 0 && r.Max.Duration == 0 {
		return def
	}
	if r.Max.Duration < r.Min.Duration {
		r.Min, r.Max = r.Max, r.Min
	}
	r.Min.Duration = max(r.Min.Duration, minDelay)
	r.Max.Duration = max(r.Max.Duration, r.Min.Duration)
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Min.Duration, r.Max.Duration)
}

type DragRelease string

const (
	// DragReleaseRestore puts the pet back into what it was doing before it
	// was picked up.
	DragReleaseRestore DragRelease = "restore"
	// DragReleaseRestart always starts a fresh walk.
	DragReleaseRestart DragRelease = "restart"
)

// Thresholds are cumulative: a walk tick rolls once in [0,1) and takes the
// first branch whose threshold is above the roll.
type Thresholds struct {
	Wag    float64 `toml:"wag"`
	Pause  float64 `toml:"pause"`
	Wonder float64 `toml:"wonder"`
	Turn   float64 `toml:"turn"`
}

// valid reports whether t is a usable set: within [0,1], never decreasing,
// and not all zero. Equal neighbours leave a branch empty.
func (t Thresholds) valid() bool {
	if t == (Thresholds{}) {
		return false
	}
	steps := []float64{0, t.Wag, t.Pause, t.Wonder, t.Turn}
	for i := 1; i < len(steps); i++ {
		if steps[i] < steps[i-1] || steps[i] > 1 {
			return false
		}
	}
	return true
}

type Config struct {
	Version string `toml:"version"`
	Name    string `toml:"name"`

	Speed         int      `toml:"speed"`
	WalkFrame     Duration `toml:"walkFrame"`
	SlowFrame     Duration `toml:"slowFrame"`
	SleepFrame    Duration `toml:"sleepFrame"`
	LogicInterval Duration `toml:"logicInterval"`
	DisplayCheck  Duration `toml:"displayCheck"`

	GreetingHold Duration `toml:"greetingHold"`
	QuestionHold Duration `toml:"questionHold"`
	ResponseHold Duration `toml:"responseHold"`

	WalkDuration  Range `toml:"walkDuration"`
	SleepDuration Range `toml:"sleepDuration"`
	Drowsy        Range `toml:"drowsy"`
	WakeUp        Range `toml:"wakeUp"`
	TurnPause     Range `toml:"turnPause"`
	WonderStep    Range `toml:"wonderStep"`
	WonderSettle  Range `toml:"wonderSettle"`
	WonderMax     int   `toml:"wonderMax"`
	PauseHold     Range `toml:"pauseHold"`
	WagHold       Range `toml:"wagHold"`
	Trauma        Range `toml:"trauma"`
	Recover       Range `toml:"recover"`

	// MaxWalkTicks forces a turn after this many logic ticks in one
	// direction.
	MaxWalkTicks int        `toml:"maxWalkTicks"`
	Thresholds   Thresholds `toml:"thresholds"`

	// InactivityTimeout puts the pet to sleep when the pointer has been
	// away this long. Zero disables it.
	InactivityTimeout Duration `toml:"inactivityTimeout"`

	BottomMargin     int `toml:"bottomMargin"`
	StartRightMargin int `toml:"startRightMargin"`
	ResetRightMargin int `toml:"resetRightMargin"`

	DragRelease DragRelease `toml:"dragRelease"`
}

func DefaultConfig() Config {
	return Config{
		Version: "1.0",
		Name:    "Fox",

		Speed:         2,
		WalkFrame:     D(150 * time.Millisecond),
		SlowFrame:     D(300 * time.Millisecond),
		SleepFrame:    D(400 * time.Millisecond),
		LogicInterval: D(time.Second),
		DisplayCheck:  D(2 * time.Second),

		GreetingHold: D(1200 * time.Millisecond),
		QuestionHold: D(2 * time.Second),
		ResponseHold: D(3 * time.Second),

		WalkDuration:  Between(30*time.Second, 40*time.Second),
		SleepDuration: Between(10*time.Second, 20*time.Second),
		Drowsy:        Between(700*time.Millisecond, 1200*time.Millisecond),
		WakeUp:        Between(700*time.Millisecond, 1200*time.Millisecond),
		TurnPause:     Between(300*time.Millisecond, 500*time.Millisecond),
		WonderStep:    Between(600*time.Millisecond, 1000*time.Millisecond),
		WonderSettle:  Between(500*time.Millisecond, 800*time.Millisecond),
		WonderMax:     3,
		PauseHold:     Between(1500*time.Millisecond, 3000*time.Millisecond),
		WagHold:       Between(1500*time.Millisecond, 3000*time.Millisecond),
		Trauma:        Between(2000*time.Millisecond, 3000*time.Millisecond),
		Recover:       Between(500*time.Millisecond, 1000*time.Millisecond),

		MaxWalkTicks: 15,
		Thresholds: Thresholds{
			Wag:    0.04,
			Pause:  0.09,
			Wonder: 0.14,
			Turn:   0.22,
		},

		InactivityTimeout: D(10 * time.Minute),

		BottomMargin:     10,
		StartRightMargin: 80,
		ResetRightMargin: 50,

		DragRelease: DragReleaseRestore,
	}
}

// Delays shorter than minDelay are raised to it so every timer moves the
// clock forward. Inactivity naps need at least minInactivity.
const (
	minDelay      = time.Millisecond
	minInactivity = time.Second
)

// Normalized replaces values the engine cannot run with by their defaults
// and orders swapped ranges. Zero fields count as unset. The start and
// reset margins may be zero to sit the pet flush against the right edge.
func (c Config) Normalized() Config {
	def := DefaultConfig()

	if c.Speed <= 0 {
		c.Speed = def.Speed
	}
	if c.BottomMargin <= 0 {
		c.BottomMargin = def.BottomMargin
	}
	durations := []struct {
		v   *Duration
		def Duration
	}{
		{&c.WalkFrame, def.WalkFrame},
		{&c.SlowFrame, def.SlowFrame},
		{&c.SleepFrame, def.SleepFrame},
		{&c.LogicInterval, def.LogicInterval},
		{&c.DisplayCheck, def.DisplayCheck},
		{&c.GreetingHold, def.GreetingHold},
		{&c.QuestionHold, def.QuestionHold},
		{&c.ResponseHold, def.ResponseHold},
	}
	for _, d := range durations {
		if d.v.Duration < minDelay {
			*d.v = d.def
		}
	}
	switch t := c.InactivityTimeout.Duration; {
	case t < 0:
		c.InactivityTimeout.Duration = 0
	case t > 0 && t < minInactivity:
		c.InactivityTimeout.Duration = minInactivity
	}

	ranges := []struct {
		v   *Range
		def Range
	}{
		{&c.WalkDuration, def.WalkDuration},
		{&c.SleepDuration, def.SleepDuration},
		{&c.Drowsy, def.Drowsy},
		{&c.WakeUp, def.WakeUp},
		{&c.TurnPause, def.TurnPause},
		{&c.WonderStep, def.WonderStep},
		{&c.WonderSettle, def.WonderSettle},
		{&c.PauseHold, def.PauseHold},
		{&c.WagHold, def.WagHold},
		{&c.Trauma, def.Trauma},
		{&c.Recover, def.Recover},
	}
	for _, r := range ranges {
		*r.v = r.v.normalized(r.def)
	}

	if !c.Thresholds.valid() {
		c.Thresholds = def.Thresholds
	}
	if c.WonderMax < 1 {
		c.WonderMax = def.WonderMax
	}
	if c.MaxWalkTicks <= 0 {
		c.MaxWalkTicks = def.MaxWalkTicks
	}
	if c.DragRelease != DragReleaseRestart {
		c.DragRelease = DragReleaseRestore
	}
	return c
}
