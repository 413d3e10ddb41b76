package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/sethgrid/foxpet/internal/art"
	"github.com/sethgrid/foxpet/internal/discovery"
	"github.com/sethgrid/foxpet/internal/geometry"
	"github.com/sethgrid/foxpet/internal/mood"
	"github.com/sethgrid/foxpet/internal/pet"
	"github.com/sethgrid/foxpet/internal/storage"
)

type desktop struct {
	bounds  geometry.Rect
	shown   []art.Ref
	bubbles []string
	asked   string
}

func (d *desktop) Display(ref art.Ref)            { d.shown = append(d.shown, ref) }
func (d *desktop) MoveWindowTo(x, y int)          {}
func (d *desktop) SetWindowVisible(bool)          {}
func (d *desktop) AvailableBounds() geometry.Rect { return d.bounds }
func (d *desktop) ShowBubble(text string, _ bool) { d.bubbles = append(d.bubbles, text) }
func (d *desktop) HideBubble()                    {}
func (d *desktop) AskRating(question string)      { d.asked = question }

// calmRand never rolls a micro-behavior and always picks the shortest delay.
type calmRand struct{}

func (calmRand) Float64() float64 { return 0.99 }
func (calmRand) Intn(int) int     { return 0 }

func TestFoxDayFromStoredConfig(t *testing.T) {
	// Create temporary project with a nested working directory
	tmpDir := t.TempDir()
	workDir := filepath.Join(tmpDir, "src", "app")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}

	// Initialize fox
	configPath, err := storage.InitConfig(tmpDir, "Ember")
	if err != nil {
		t.Fatalf("Failed to initialize fox: %v", err)
	}

	// Tighten the timings so the whole day fits in a minute
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.WalkDuration = pet.Between(2*time.Second, 2*time.Second)
	cfg.SleepDuration = pet.Between(3*time.Second, 3*time.Second)
	cfg.Drowsy = pet.Between(500*time.Millisecond, 500*time.Millisecond)
	cfg.WakeUp = pet.Between(500*time.Millisecond, 500*time.Millisecond)
	cfg.Trauma = pet.Between(time.Second, time.Second)
	cfg.Recover = pet.Between(500*time.Millisecond, 500*time.Millisecond)
	if err := storage.SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Discover it from the nested directory and reload
	found, ok, err := discovery.FindConfigFile(workDir)
	if err != nil || !ok {
		t.Fatalf("Failed to discover config: ok=%v err=%v", ok, err)
	}
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
	cfg, err = storage.LoadConfig(found)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if cfg.Name != "Ember" {
		t.Errorf("Expected name 'Ember', got '%s'", cfg.Name)
	}

	sheet, _ := art.Placeholder(art.FrameSize{Width: 100, Height: 100})
	screen := &desktop{bounds: geometry.Rect{Width: 1920, Height: 1080}}
	start := time.Date(2026, 10, 14, 20, 0, 0, 0, time.Local)
	e := pet.New(pet.Options{
		Config:    cfg,
		Frames:    sheet,
		Size:      geometry.Size{Width: 100, Height: 100},
		Surface:   screen,
		Dialogs:   screen,
		Rand:      calmRand{},
		Now:       start,
		Direction: pet.Left,
	})
	at := func(d time.Duration) { e.Advance(start.Add(d)) }
	expect := func(want pet.State) {
		t.Helper()
		if got := e.State(); got != want {
			t.Fatalf("At +%s expected %s, got %s", e.Now().Sub(start), want, got)
		}
	}

	// Onboarding
	e.StartIntro()
	if screen.bubbles[0] != "Good evening!" {
		t.Errorf("Expected evening greeting, got %q", screen.bubbles[0])
	}
	at(3200 * time.Millisecond)
	if screen.asked == "" {
		t.Fatal("Expected the mood question to be asked")
	}
	reply := e.SubmitMoodRating(5)
	if reply == "" || screen.bubbles[len(screen.bubbles)-1] != reply {
		t.Errorf("Expected a reply bubble, got %q", reply)
	}
	if !slices.Contains(mood.Responses(mood.RatingGreat), reply) {
		t.Errorf("Reply %q is not a rating-5 response", reply)
	}
	expect(pet.PostIntroIdle)

	// Walk, nap, sleep, wake
	at(6200 * time.Millisecond)
	expect(pet.Walking)
	at(8200 * time.Millisecond)
	expect(pet.Idling)
	at(8700 * time.Millisecond)
	expect(pet.Sleeping)
	at(11700 * time.Millisecond)
	expect(pet.WakingUp)
	at(12200 * time.Millisecond)
	expect(pet.Walking)

	// Pick the fox up mid-walk and drop it
	at(13 * time.Second)
	e.OnDragStart(geometry.Point{X: 1700, Y: 1000})
	expect(pet.Dragging)
	e.OnDragMove(geometry.Point{X: -300, Y: -400})
	at(13500 * time.Millisecond)
	e.OnDragEnd()
	expect(pet.PostTrauma)
	if y := e.Position().Y; y != 1080-100-10 {
		t.Errorf("Expected the fox back on the baseline, got y=%d", y)
	}
	at(14500 * time.Millisecond)
	expect(pet.Recovering)
	at(15 * time.Second)
	expect(pet.Walking)
	if left := e.Snapshot().StateTimer; left != 1200*time.Millisecond {
		t.Errorf("Expected the walk to resume with 1.2s left, got %s", left)
	}

	// Open the music panel, then close it much later
	at(15500 * time.Millisecond)
	e.Suspend(pet.PanelMusic)
	expect(pet.Talking)
	at(time.Minute)
	expect(pet.Talking)
	e.Resume(pet.PanelMusic)
	expect(pet.Walking)
	at(time.Minute + 700*time.Millisecond)
	expect(pet.Idling)

	// Player state lives next to the config
	playerPath := discovery.PlayerStatePath(configPath)
	if err := storage.SavePlayerState(storage.PlayerState{Volume: 0.4, Track: "forest.ogg"}, playerPath); err != nil {
		t.Fatalf("Failed to save player state: %v", err)
	}
	player, err := storage.LoadPlayerState(playerPath)
	if err != nil {
		t.Fatalf("Failed to load player state: %v", err)
	}
	if player.Volume != 0.4 || player.Track != "forest.ogg" {
		t.Errorf("Player state not persisted correctly: %+v", player)
	}
}

func TestRestartPolicyFromConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".foxpet", "foxpet.toml")
	data := `name = "Pip"
dragRelease = "restart"

[walkDuration]
min = "10s"
max = "10s"
`
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	screen := &desktop{bounds: geometry.Rect{Width: 1280, Height: 800}}
	start := time.Date(2026, 10, 14, 8, 0, 0, 0, time.Local)
	e := pet.New(pet.Options{
		Config:    cfg,
		Size:      geometry.Size{Width: 64, Height: 64},
		Surface:   screen,
		Rand:      calmRand{},
		Now:       start,
		Direction: pet.Left,
	})
	e.EnterMainLifecycle()

	e.Advance(start.Add(4 * time.Second))
	e.OnDragStart(geometry.Point{})
	e.OnDragEnd()
	e.Advance(start.Add(10 * time.Second))

	if e.State() != pet.Walking {
		t.Fatalf("Expected walking after recovery, got %s", e.State())
	}
	// Recovery ends at 6.5s; a restored walk would have 2.5s left by now.
	if left := e.Snapshot().StateTimer; left != 6500*time.Millisecond {
		t.Errorf("Expected a fresh walk timer, got %s", left)
	}
}
