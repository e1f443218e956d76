package config

// Config is the root configuration structure.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Storage  StorageConfig  `toml:"storage"`
	Defaults DefaultsConfig `toml:"defaults"`
	Lyrics   LyricsConfig   `toml:"lyrics"`
	TUI      TUIConfig      `toml:"tui"`
	Notify   NotifyConfig   `toml:"notify"`
	Remote   RemoteConfig   `toml:"remote"`
	Log      LogConfig      `toml:"log"`
}

// LibraryConfig holds music folder settings.
type LibraryConfig struct {
	Folder      string `toml:"folder"`
	Watch       bool   `toml:"watch"`
	ScanWorkers int    `toml:"scan_workers"`
}

// StorageConfig selects where stats, playlists and favorites are kept.
type StorageConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	DSN     string `toml:"dsn"`
}

// DefaultsConfig holds default playback settings.
type DefaultsConfig struct {
	Volume  int    `toml:"volume"`
	Shuffle bool   `toml:"shuffle"`
	Repeat  string `toml:"repeat"`
}

// LyricsConfig holds lyrics lookup settings.
type LyricsConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	Timeout  int    `toml:"timeout"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	RefreshInterval int    `toml:"refresh_interval"`
	StartView       string `toml:"start_view"`
}

// NotifyConfig controls desktop notifications on track change.
type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

// RemoteConfig controls the HTTP remote control server.
type RemoteConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
