package playlist

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
	"github.com/olivier-w/crossroads/internal/storage"
)

// Favorites is the set of favorite song paths, kept in the order they were
// added.
type Favorites struct {
	mu     sync.Mutex
	paths  []string
	store  storage.Store
	logger *slog.Logger
}

// NewFavorites creates an empty set persisting under the favorites key.
func NewFavorites(store storage.Store, logger *slog.Logger) *Favorites {
	if logger == nil {
		logger = slog.Default()
	}
	return &Favorites{store: store, logger: logger}
}

// Load reads the stored set. A missing key means none.
func (f *Favorites) Load() error {
	var paths []string
	if _, err := f.store.Get(storage.KeyFavorites, &paths); err != nil {
		return err
	}
	f.mu.Lock()
	f.paths = paths
	f.mu.Unlock()
	return nil
}

// Paths returns the favorites in insertion order.
func (f *Favorites) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.paths)
}

// Contains reports whether path is a favorite.
func (f *Favorites) Contains(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.paths, path)
}

// Toggle adds or removes path and reports whether it is now a favorite.
// An empty path does nothing.
func (f *Favorites) Toggle(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	fav := true
	if i := slices.Index(f.paths, path); i >= 0 {
		f.paths = slices.Delete(f.paths, i, i+1)
		fav = false
	} else {
		f.paths = append(f.paths, path)
	}

	paths := f.paths
	if paths == nil {
		paths = []string{}
	}
	if err := f.store.Set(storage.KeyFavorites, paths); err != nil {
		f.logger.Error("failed to save favorites", "error", err)
		return fav, fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return fav, nil
}
