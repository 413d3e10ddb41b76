package pet

import (
	"testing"
	"time"
)

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1.2s")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration != 1200*time.Millisecond {
		t.Errorf("expected 1.2s, got %s", d.Duration)
	}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text) != "1.2s" {
		t.Errorf("expected 1.2s, got %s", text)
	}

	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected an error for a bad duration")
	}
}

type stepRand struct{ n, got int }

func (r *stepRand) Float64() float64 { return 0 }
func (r *stepRand) Intn(n int) int {
	r.n = n
	return r.got
}

func TestRangePick(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		roll  int
		wantN int
		want  time.Duration
	}{
		{"low end", Between(300*time.Millisecond, 500*time.Millisecond), 0, 201, 300 * time.Millisecond},
		{"high end", Between(300*time.Millisecond, 500*time.Millisecond), 200, 201, 500 * time.Millisecond},
		{"fixed", Between(2*time.Second, 2*time.Second), 0, 0, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := &stepRand{got: tt.roll}
			if got := tt.r.Pick(rnd); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if rnd.n != tt.wantN {
				t.Errorf("expected Intn(%d), got Intn(%d)", tt.wantN, rnd.n)
			}
		})
	}
}

func TestDefaultConfigMatchesTuning(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Speed != 2 || cfg.WalkFrame.Duration != 150*time.Millisecond {
		t.Errorf("unexpected walk tuning: speed %d frame %s", cfg.Speed, cfg.WalkFrame)
	}
	th := cfg.Thresholds
	if !(th.Wag < th.Pause && th.Pause < th.Wonder && th.Wonder < th.Turn) {
		t.Errorf("thresholds must be cumulative: %+v", th)
	}
	if cfg.DragRelease != DragReleaseRestore {
		t.Errorf("expected restore on drag release, got %q", cfg.DragRelease)
	}
	if cfg.Normalized() != cfg {
		t.Error("defaults should survive normalization unchanged")
	}
}

func TestNormalized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed = 0
	cfg.WalkFrame = D(0)
	cfg.GreetingHold = D(-time.Second)
	cfg.TurnPause = Between(500*time.Millisecond, 300*time.Millisecond)
	cfg.Trauma = Between(-time.Second, time.Second)
	cfg.WonderMax = 0
	cfg.MaxWalkTicks = -1
	cfg.DragRelease = "bounce"
	cfg.InactivityTimeout = D(0)

	got := cfg.Normalized()

	if got.Speed != 2 {
		t.Errorf("expected default speed, got %d", got.Speed)
	}
	if got.WalkFrame.Duration != 150*time.Millisecond {
		t.Errorf("expected default walk frame, got %s", got.WalkFrame)
	}
	if got.GreetingHold.Duration != 1200*time.Millisecond {
		t.Errorf("expected negative hold replaced by the default, got %s", got.GreetingHold)
	}
	if got.TurnPause.Min.Duration != 300*time.Millisecond || got.TurnPause.Max.Duration != 500*time.Millisecond {
		t.Errorf("expected swapped range fixed, got %s", got.TurnPause)
	}
	if got.Trauma.Min.Duration != time.Millisecond || got.Trauma.Max.Duration != time.Second {
		t.Errorf("expected negative min raised to 1ms, got %s", got.Trauma)
	}
	if got.WonderMax != 3 || got.MaxWalkTicks != 15 {
		t.Errorf("expected defaults, got wonderMax %d maxWalkTicks %d", got.WonderMax, got.MaxWalkTicks)
	}
	if got.DragRelease != DragReleaseRestore {
		t.Errorf("expected unknown policy to fall back to restore, got %q", got.DragRelease)
	}
	if got.InactivityTimeout.Duration != 0 {
		t.Error("a zero inactivity timeout disables the nap and must stay zero")
	}
}

func TestNormalizedZeroConfig(t *testing.T) {
	got := Config{}.Normalized()

	want := DefaultConfig()
	want.Version = ""
	want.Name = ""
	want.InactivityTimeout = D(0)
	want.StartRightMargin = 0
	want.ResetRightMargin = 0
	if got != want {
		t.Errorf("expected defaults for every unset field\n got: %+v\nwant: %+v", got, want)
	}
}

func TestNormalizedRanges(t *testing.T) {
	def := DefaultConfig().WalkDuration
	tests := []struct {
		name     string
		in       Range
		expected Range
	}{
		{"zero takes default", Range{}, def},
		{"kept", Between(2*time.Second, 3*time.Second), Between(2*time.Second, 3*time.Second)},
		{"swapped", Between(3*time.Second, 2*time.Second), Between(2*time.Second, 3*time.Second)},
		{"zero min raised", Between(0, time.Second), Between(time.Millisecond, time.Second)},
		{"sub-millisecond", Between(0, time.Microsecond), Between(time.Millisecond, time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.WalkDuration = tt.in
			if got := cfg.Normalized().WalkDuration; got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNormalizedThresholds(t *testing.T) {
	def := DefaultConfig().Thresholds
	tests := []struct {
		name     string
		in       Thresholds
		expected Thresholds
	}{
		{"zero takes default", Thresholds{}, def},
		{"custom", Thresholds{Wag: 0.1, Pause: 0.2, Wonder: 0.3, Turn: 0.4}, Thresholds{Wag: 0.1, Pause: 0.2, Wonder: 0.3, Turn: 0.4}},
		{"empty branches", Thresholds{Turn: 0.5}, Thresholds{Turn: 0.5}},
		{"decreasing", Thresholds{Wag: 0.3, Pause: 0.2, Wonder: 0.3, Turn: 0.4}, def},
		{"negative", Thresholds{Wag: -0.1, Pause: 0.2, Wonder: 0.3, Turn: 0.4}, def},
		{"above one", Thresholds{Wag: 0.1, Pause: 0.2, Wonder: 0.3, Turn: 1.5}, def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Thresholds = tt.in
			if got := cfg.Normalized().Thresholds; got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestNormalizedInactivityFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InactivityTimeout = D(time.Nanosecond)
	if got := cfg.Normalized().InactivityTimeout.Duration; got != time.Second {
		t.Errorf("expected a tiny timeout raised to 1s, got %s", got)
	}
}
