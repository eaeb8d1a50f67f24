package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvDBPath overrides db_path from the config file.
const EnvDBPath = "CUEDIT_DB_PATH"

type Config struct {
	DBPath        string  `toml:"db_path"`
	DefaultFormat string  `toml:"default_format"`
	TailSeconds   float64 `toml:"tail_seconds"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(home, ".config", "cuedit", "config.toml"), home)
}

// LoadFrom reads cfgPath over the defaults. A missing file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := &Config{
		DBPath:        filepath.Join(home, ".config", "cuedit", "cuedit.db"),
		DefaultFormat: "srt",
		TailSeconds:   2.0,
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if err := loadEnv(".env"); err != nil {
		return nil, err
	}
	if p := os.Getenv(EnvDBPath); p != "" {
		cfg.DBPath = p
	}

	if cfg.TailSeconds < 0 {
		return nil, fmt.Errorf("parse config %s: tail_seconds must not be negative", cfgPath)
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

// loadEnv sets variables from an env file without overriding ones already
// set. A missing file is not an error.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
