package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethgrid/foxpet/internal/pet"
)

func TestInitAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := InitConfig(dir, "Rusty")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if want := filepath.Join(dir, ".foxpet", "foxpet.toml"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := pet.DefaultConfig()
	want.Name = "Rusty"
	if cfg != want {
		t.Errorf("round trip changed the config:\n got %+v\nwant %+v", cfg, want)
	}

	if _, err := InitConfig(dir, "Other"); err == nil {
		t.Error("expected init to refuse overwriting an existing config")
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foxpet.toml")
	data := `name = "Ember"
speed = 3
dragRelease = "restart"
inactivityTimeout = "0s"

[walkDuration]
min = "5s"
max = "8s"

[thresholds]
wag = 0.1
pause = 0.2
wonder = 0.3
turn = 0.4
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Name != "Ember" || cfg.Speed != 3 {
		t.Errorf("expected overrides applied, got name %q speed %d", cfg.Name, cfg.Speed)
	}
	if cfg.DragRelease != pet.DragReleaseRestart {
		t.Errorf("expected restart policy, got %q", cfg.DragRelease)
	}
	if cfg.WalkDuration != pet.Between(5*time.Second, 8*time.Second) {
		t.Errorf("unexpected walk duration %s", cfg.WalkDuration)
	}
	if cfg.Thresholds.Turn != 0.4 {
		t.Errorf("unexpected thresholds %+v", cfg.Thresholds)
	}
	if cfg.InactivityTimeout.Duration != 0 {
		t.Errorf("expected inactivity disabled, got %s", cfg.InactivityTimeout)
	}
	if cfg.SleepDuration != pet.DefaultConfig().SleepDuration {
		t.Errorf("expected default sleep duration, got %s", cfg.SleepDuration)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte(`walkFrame = "fast"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected a parse error for a bad duration")
	}
}

func TestPlayerStateDefaultsWhenMissing(t *testing.T) {
	state, err := LoadPlayerState(filepath.Join(t.TempDir(), "player.state.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Volume != DefaultVolume || state.Muted || state.Track != "" {
		t.Errorf("expected defaults, got %+v", state)
	}
}

func TestPlayerStateRoundTripClampsVolume(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		want   float64
	}{
		{"in range", 0.25, 0.25},
		{"too loud", 1.7, 1},
		{"negative", -0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".foxpet", "player.state.toml")
			in := PlayerState{
				Volume:   tt.volume,
				Muted:    true,
				Track:    "lofi-fox.ogg",
				Position: pet.D(95 * time.Second),
			}
			if err := SavePlayerState(in, path); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			got, err := LoadPlayerState(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if got.Volume != tt.want {
				t.Errorf("expected volume %v, got %v", tt.want, got.Volume)
			}
			if !got.Muted || got.Track != "lofi-fox.ogg" || got.Position.Duration != 95*time.Second {
				t.Errorf("unexpected state %+v", got)
			}
			if got.SavedAt.IsZero() {
				t.Error("expected save time recorded")
			}
		})
	}
}
