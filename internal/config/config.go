package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.crossroadsrc, $XDG_CONFIG_HOME/crossroads/config.toml.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	return LoadFrom(FindConfigFile())
}

// LoadFrom reads configuration from a specific file path. An empty path
// yields defaults plus environment overrides. Files written before booleans
// existed keep the defaults for the keys they omit.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes cfg as TOML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// DefaultPath returns where a new config file is written.
func DefaultPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "crossroads", "config.toml")
}

// FindConfigFile returns the first existing config file path, or "".
func FindConfigFile() string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".crossroadsrc"))
	}
	paths = append(paths, DefaultPath())

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Library
	if v := os.Getenv("CROSSROADS_LIBRARY_FOLDER"); v != "" {
		cfg.Library.Folder = v
	}
	if v := os.Getenv("CROSSROADS_LIBRARY_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Library.Watch = b
		}
	}

	// Storage
	if v := os.Getenv("CROSSROADS_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("CROSSROADS_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("CROSSROADS_STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}

	// Defaults
	if v := os.Getenv("CROSSROADS_DEFAULTS_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.Volume = i
		}
	}

	// Lyrics
	if v := os.Getenv("CROSSROADS_LYRICS_ENDPOINT"); v != "" {
		cfg.Lyrics.Endpoint = v
	}

	// Remote
	if v := os.Getenv("CROSSROADS_REMOTE_ADDR"); v != "" {
		cfg.Remote.Addr = v
	}

	// Log
	if v := os.Getenv("CROSSROADS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CROSSROADS_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
