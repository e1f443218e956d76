package config

import (
	"os"
	"path/filepath"
)

// DefaultLyricsEndpoint is the lrclib lookup URL.
const DefaultLyricsEndpoint = "https://lrclib.net/api/get"

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Library: LibraryConfig{
			Watch: true,
		},
		Storage: StorageConfig{
			Backend: "json",
			Dir:     DataDir(),
		},
		Defaults: DefaultsConfig{
			Volume: 80,
			Repeat: "off",
		},
		Lyrics: LyricsConfig{
			Enabled:  true,
			Endpoint: DefaultLyricsEndpoint,
			Timeout:  10,
		},
		TUI: TUIConfig{
			RefreshInterval: 250,
			StartView:       "dashboard",
		},
		Remote: RemoteConfig{
			Addr: "127.0.0.1:7878",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(DataDir(), "crossroads.log"),
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
// Booleans are left as decoded.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Storage
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = d.Storage.Dir
	}

	// Defaults
	if c.Defaults.Volume == 0 {
		c.Defaults.Volume = d.Defaults.Volume
	}
	if c.Defaults.Repeat == "" {
		c.Defaults.Repeat = d.Defaults.Repeat
	}

	// Lyrics
	if c.Lyrics.Endpoint == "" {
		c.Lyrics.Endpoint = d.Lyrics.Endpoint
	}
	if c.Lyrics.Timeout == 0 {
		c.Lyrics.Timeout = d.Lyrics.Timeout
	}

	// TUI
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}
	if c.TUI.StartView == "" {
		c.TUI.StartView = d.TUI.StartView
	}

	// Remote
	if c.Remote.Addr == "" {
		c.Remote.Addr = d.Remote.Addr
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.Storage.Dir, "crossroads.log")
	}
}

// DataDir returns the default directory for stored state and logs.
func DataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "crossroads")
	}
	return ".crossroads"
}
