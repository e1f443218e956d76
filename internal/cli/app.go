package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olivier-w/crossroads/internal/config"
	apperrors "github.com/olivier-w/crossroads/internal/errors"
	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/playlist"
	"github.com/olivier-w/crossroads/internal/smart"
	"github.com/olivier-w/crossroads/internal/stats"
	"github.com/olivier-w/crossroads/internal/storage"
)

// app is the persistent state shared by every command.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      storage.Store
	closeStore func() error

	catalog   *library.Catalog
	scanner   *library.Scanner
	recorder  *stats.Recorder
	playlists *playlist.Store
	favorites *playlist.Favorites
}

// openApp opens the configured store and loads stats, playlists and
// favorites. A key that fails to load starts empty and is logged.
func openApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	store, closeStore, err := storage.Open(storage.Options{
		Backend: cfg.Storage.Backend,
		Dir:     cfg.Storage.Dir,
		DSN:     cfg.Storage.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		closeStore: closeStore,
		catalog:    library.NewCatalog(nil),
		scanner:    library.NewScanner(cfg.Library.ScanWorkers, logger),
		recorder:   stats.NewRecorder(store, logger),
		playlists:  playlist.NewStore(store, logger),
		favorites:  playlist.NewFavorites(store, logger),
	}
	for name, load := range map[string]func() error{
		storage.KeyStats:     a.recorder.Load,
		storage.KeyPlaylists: a.playlists.Load,
		storage.KeyFavorites: a.favorites.Load,
	} {
		if err := load(); err != nil {
			logger.Warn("could not load saved state, starting empty", "key", name, "error", err)
		}
	}
	return a, nil
}

func (a *app) close() {
	a.recorder.Close()
	if err := a.closeStore(); err != nil {
		a.logger.Warn("closing store failed", "error", err)
	}
}

// folder returns the music folder: the config setting, else the last one
// selected.
func (a *app) folder() string {
	if a.cfg.Library.Folder != "" {
		return a.cfg.Library.Folder
	}
	var folder string
	if _, err := a.store.Get(storage.KeyMusicFolder, &folder); err != nil {
		a.logger.Warn("reading music folder failed", "error", err)
	}
	return folder
}

func (a *app) setFolder(folder string) error {
	if err := a.store.Set(storage.KeyMusicFolder, folder); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// scan fills the catalog from the music folder.
func (a *app) scan(ctx context.Context) error {
	folder := a.folder()
	if folder == "" {
		return apperrors.ErrNoMusicFolder
	}
	songs, err := a.scanner.Scan(ctx, folder)
	if err != nil {
		return err
	}
	a.catalog.Replace(songs)
	return nil
}

func (a *app) smartInput() smart.Input {
	return smart.Input{
		Stats:     a.recorder.Stats(),
		Favorites: a.favorites.Paths(),
		Catalog:   a.catalog,
	}
}

// playlistSongs resolves a user playlist id or a smart kind to its songs.
func (a *app) playlistSongs(id string) ([]library.Song, error) {
	if kind, err := smart.ParseKind(id); err == nil {
		return smart.Evaluate(kind, a.smartInput()), nil
	}
	return a.playlists.Resolve(id, a.catalog)
}
