package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethgrid/foxpet/internal/storage"
)

// FindConfigFile walks up from startDir looking for .foxpet/foxpet.toml.
func FindConfigFile(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		configPath := filepath.Join(dir, storage.DirName, storage.ConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", false, nil
}

// ResolveConfig picks the config to use: an explicit path wins, then the
// nearest project config, then the global one. The bool is false when no
// file exists and the caller should run on defaults.
func ResolveConfig(explicit, startDir string) (string, bool, error) {
	if explicit != "" {
		return explicit, true, nil
	}
	path, found, err := FindConfigFile(startDir)
	if err != nil || found {
		return path, found, err
	}
	global := GlobalConfigPath()
	if _, err := os.Stat(global); err == nil {
		return global, true, nil
	}
	return "", false, nil
}

func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return home
}

func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), storage.DirName, storage.ConfigFile)
}

// PlayerStatePath keeps the player state next to the config in use, or in
// the global directory when running on defaults.
func PlayerStatePath(configPath string) string {
	if configPath == "" {
		return filepath.Join(GlobalDir(), storage.DirName, storage.PlayerStateFile)
	}
	return filepath.Join(filepath.Dir(configPath), storage.PlayerStateFile)
}
