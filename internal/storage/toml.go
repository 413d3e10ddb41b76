package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/foxpet/internal/pet"
)

const (
	DirName         = ".foxpet"
	ConfigFile      = "foxpet.toml"
	PlayerStateFile = "player.state.toml"

	DefaultVolume = 0.8
)

// ErrNotFound is returned when a file that must exist does not.
var ErrNotFound = errors.New("not found")

// PlayerState is what the music panel remembers between runs.
type PlayerState struct {
	Volume   float64      `toml:"volume"`
	Muted    bool         `toml:"muted"`
	Track    string       `toml:"track"`
	Position pet.Duration `toml:"position"`
	SavedAt  time.Time    `toml:"savedAt"`
}

func DefaultPlayerState() PlayerState {
	return PlayerState{Volume: DefaultVolume}
}

// Clamped keeps the volume in [0, 1] and the position non-negative.
func (s PlayerState) Clamped() PlayerState {
	switch {
	case s.Volume < 0:
		s.Volume = 0
	case s.Volume > 1:
		s.Volume = 1
	}
	if s.Position.Duration < 0 {
		s.Position.Duration = 0
	}
	return s
}

// LoadConfig reads a config file. Keys the file leaves out keep their
// default.
func LoadConfig(path string) (pet.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pet.Config{}, fmt.Errorf("failed to read config file %s: %w", path, ErrNotFound)
		}
		return pet.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := pet.DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return pet.Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg.Normalized(), nil
}

func SaveConfig(cfg pet.Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeFile(path, data)
}

// InitConfig writes a default config named name under baseDir/.foxpet and
// returns its path. An existing file is left alone.
func InitConfig(baseDir, name string) (string, error) {
	configPath := filepath.Join(baseDir, DirName, ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return configPath, fmt.Errorf("config already exists at %s", configPath)
	}

	cfg := pet.DefaultConfig()
	if name != "" {
		cfg.Name = name
	}
	if err := SaveConfig(cfg, configPath); err != nil {
		return "", err
	}
	return configPath, nil
}

// LoadPlayerState reads the player state. A missing file is not an error:
// the defaults are returned.
func LoadPlayerState(path string) (PlayerState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultPlayerState(), nil
		}
		return PlayerState{}, fmt.Errorf("failed to read player state: %w", err)
	}

	state := DefaultPlayerState()
	if err := toml.Unmarshal(data, &state); err != nil {
		return PlayerState{}, fmt.Errorf("failed to parse player state: %w", err)
	}
	return state.Clamped(), nil
}

func SavePlayerState(state PlayerState, path string) error {
	state = state.Clamped()
	state.SavedAt = time.Now().UTC().Truncate(time.Second)

	data, err := toml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
