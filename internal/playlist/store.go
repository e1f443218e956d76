// Package playlist manages user playlists and favorites.
package playlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/storage"
)

// Store holds user playlists in memory and writes them back on every change.
type Store struct {
	mu     sync.Mutex
	lists  []User
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store persisting under the playlists key.
func NewStore(store storage.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{store: store, logger: logger, now: time.Now}
}

// Load reads stored playlists. A missing key means none.
func (s *Store) Load() error {
	var lists []User
	if _, err := s.store.Get(storage.KeyPlaylists, &lists); err != nil {
		return err
	}
	s.mu.Lock()
	s.lists = lists
	s.mu.Unlock()
	return nil
}

// List returns every user playlist in creation order.
func (s *Store) List() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.clone()
	}
	return out
}

// Get returns the playlist with id.
func (s *Store) Get(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return User{}, false
	}
	return s.lists[i].clone(), true
}

// Create appends an empty playlist named name. Names are trimmed; a blank
// name returns ErrEmptyName and changes nothing.
func (s *Store) Create(name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, apperrors.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.now().UnixMilli()
	id := fmt.Sprintf("pl-%d", ms)
	for s.indexLocked(id) >= 0 {
		ms++
		id = fmt.Sprintf("pl-%d", ms)
	}
	pl := User{ID: id, Name: name, Songs: []string{}}
	s.lists = append(s.lists, pl)
	s.logger.Info("playlist created", "id", id, "name", name)
	return pl.clone(), s.persistLocked()
}

// AddSongs appends the paths of songs not already in the playlist, in the
// given order. It returns how many were added. An unknown id changes
// nothing and returns ErrPlaylistNotFound.
func (s *Store) AddSongs(id string, songs ...library.Song) (int, error) {
	if len(songs) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return 0, fmt.Errorf("%s: %w", id, apperrors.ErrPlaylistNotFound)
	}
	pl := &s.lists[i]
	added := 0
	for _, song := range songs {
		if song.Path == "" || pl.Contains(song.Path) {
			continue
		}
		pl.Songs = append(pl.Songs, song.Path)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.persistLocked()
}

// Delete removes the playlist after prompter confirms. It reports whether
// the playlist was removed; a declined prompt is not an error.
func (s *Store) Delete(ctx context.Context, id string, prompter platform.Prompter) (bool, error) {
	pl, ok := s.Get(id)
	if !ok {
		return false, fmt.Errorf("%s: %w", id, apperrors.ErrPlaylistNotFound)
	}
	yes, err := prompter.Confirm(ctx, fmt.Sprintf("Delete playlist %q?", pl.Name))
	if err != nil || !yes {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	s.lists = append(s.lists[:i], s.lists[i+1:]...)
	s.logger.Info("playlist deleted", "id", id)
	return true, s.persistLocked()
}

// Resolve maps the playlist's paths to catalog songs, dropping paths the
// catalog no longer has.
func (s *Store) Resolve(id string, catalog *library.Catalog) ([]library.Song, error) {
	pl, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, apperrors.ErrPlaylistNotFound)
	}
	return catalog.Resolve(pl.Songs), nil
}

func (s *Store) indexLocked(id string) int {
	for i, l := range s.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() error {
	lists := s.lists
	if lists == nil {
		lists = []User{}
	}
	if err := s.store.Set(storage.KeyPlaylists, lists); err != nil {
		s.logger.Error("failed to save playlists", "error", err)
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}
