package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFileKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[library]
folder = "/music"

[storage]
backend = "sqlite"

[defaults]
volume = 40
repeat = "all"
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Library.Folder != "/music" || cfg.Storage.Backend != "sqlite" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Defaults.Volume != 40 || cfg.Defaults.Repeat != "all" {
		t.Fatalf("defaults section = %+v", cfg.Defaults)
	}
	if !cfg.Lyrics.Enabled || !cfg.Library.Watch {
		t.Fatal("expected omitted booleans to keep their defaults")
	}
	if cfg.Lyrics.Endpoint != DefaultLyricsEndpoint {
		t.Fatalf("Lyrics.Endpoint = %q", cfg.Lyrics.Endpoint)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CROSSROADS_LIBRARY_FOLDER", "/env/music")
	t.Setenv("CROSSROADS_STORAGE_BACKEND", "mysql")
	t.Setenv("CROSSROADS_STORAGE_DSN", "u:p@tcp(localhost:3306)/db")
	t.Setenv("CROSSROADS_DEFAULTS_VOLUME", "15")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Library.Folder != "/env/music" || cfg.Storage.Backend != "mysql" || cfg.Defaults.Volume != 15 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "redis"
	cfg.Defaults.Volume = 150
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"storage:", "defaults:", "log:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateMySQLNeedsDSN(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mysql without dsn")
	}
}

func TestValidateRemoteAddrOnlyWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Remote.Addr = "nonsense"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled remote should not be validated: %v", err)
	}
	cfg.Remote.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad remote addr")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Library.Folder = "/saved"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Library.Folder != "/saved" {
		t.Fatalf("Library.Folder = %q", loaded.Library.Folder)
	}
}
