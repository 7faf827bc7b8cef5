package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config controls runtime behavior for the engine wiring.
type Config struct {
	// DataDir holds the state database. Empty means the platform
	// default under the user's home.
	DataDir string
	// LogPath is the JSON event log; empty disables logging.
	LogPath string
	// PacksDir holds extra exercise packs; the built-in pack is always
	// available.
	PacksDir string
	// DebugUnlockAll bypasses the level unlock gate.
	DebugUnlockAll bool
}

func DefaultConfig() Config {
	return Config{}
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "mathbook")
	}
	return nil
}

type rawConfigFile struct {
	App rawConfigApp `toml:"app"`
}

type rawConfigApp struct {
	DataDir        string `toml:"data_dir"`
	LogPath        string `toml:"log_path"`
	PacksDir       string `toml:"packs_dir"`
	DebugUnlockAll bool   `toml:"debug_unlock_all"`
}

// LoadConfigFile merges a TOML config file over the defaults. A missing
// file yields the defaults; a malformed file is an error.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	var raw rawConfigFile
	if err := toml.Unmarshal(b, &raw); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if raw.App.DataDir != "" {
		cfg.DataDir = raw.App.DataDir
	}
	if raw.App.LogPath != "" {
		cfg.LogPath = raw.App.LogPath
	}
	if raw.App.PacksDir != "" {
		cfg.PacksDir = raw.App.PacksDir
	}
	cfg.DebugUnlockAll = raw.App.DebugUnlockAll
	return cfg, nil
}
