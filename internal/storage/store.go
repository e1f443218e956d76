// Package storage persists small JSON documents under logical keys.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Logical keys used by the player.
const (
	KeyStats       = "stats"
	KeyPlaylists   = "playlists"
	KeyFavorites   = "favorites"
	KeyMusicFolder = "musicFolder"
)

// Store reads and writes JSON-encodable values by key.
// Get reports false with a nil error when the key has never been written.
type Store interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
}

// Memory is an in-process Store. Values are held encoded so callers never
// share state with the store.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(key string, v any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (m *Memory) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Dir holds JSON files or the SQLite database.
	Dir string
	// DSN is the MySQL connection string.
	DSN string
}

// Open returns the Store for opts.Backend. The returned close function
// releases any database handle and is safe to call once.
func Open(opts Options) (Store, func() error, error) {
	switch opts.Backend {
	case BackendJSON, "":
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case BackendSQLite:
		s, err := OpenSQLite(SQLitePath(opts.Dir))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendMySQL:
		s, err := OpenMySQL(opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}
