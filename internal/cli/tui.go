package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/lyrics"
	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/playback"
	"github.com/olivier-w/crossroads/internal/player"
	"github.com/olivier-w/crossroads/internal/queue"
	"github.com/olivier-w/crossroads/internal/remote"
	"github.com/olivier-w/crossroads/internal/ui"
)

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the player (default)",
		Long: `Open the interactive player.

Keyboard shortcuts:
  tab, 1-4     Switch view (Dashboard, Library, Playlists, Lyrics)
  space        Play/Pause
  n / p        Next / previous track
  ←/→          Seek 5 seconds
  +/-          Volume up/down
  s / r        Shuffle / cycle repeat
  f            Favorite the current song
  m            Toggle the mini player
  R            Rescan the music folder
  q, Ctrl+C    Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
}

func runTUI(cmd *cobra.Command, g *globals) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	cfg := g.cfg
	logger := g.logger

	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	window := &platform.TerminalWindow{}
	folder := a.folder()
	if folder == "" {
		folder, err = window.SelectFolder(ctx)
		if errors.Is(err, apperrors.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := a.setFolder(folder); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Scanning %s…\n", folder)
	if err := a.scan(ctx); err != nil {
		return err
	}
	logger.Info("library scanned", "folder", folder, "songs", a.catalog.Len())

	out := player.New(float64(cfg.Defaults.Volume)/100, logger)
	defer out.Close()

	ctrl := playback.New(out, a.catalog, nil, logger)
	ctrl.AddListener(a.recorder)
	if cfg.Notify.Enabled {
		ctrl.AddListener(ui.NewNotifier(logger))
	}
	if mode, ok := queue.ParseRepeatMode(cfg.Defaults.Repeat); ok {
		ctrl.SetRepeat(mode)
	}
	if cfg.Defaults.Shuffle {
		ctrl.ToggleShuffle()
	}
	go ctrl.Run(ctx)

	var watcher *library.Watcher
	if cfg.Library.Watch {
		watcher = library.NewWatcher(folder, time.Second, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("folder watcher stopped", "error", err)
			}
		}()
	}

	if cfg.Remote.Enabled {
		gin.SetMode(gin.ReleaseMode)
		srv := remote.New(remote.Deps{
			Player:    ctrl,
			Stats:     a.recorder.Stats,
			Catalog:   a.catalog,
			Playlists: a.playlists,
			Favorites: a.favorites,
			Logger:    logger,
		})
		go func() {
			if err := srv.Run(ctx, cfg.Remote.Addr); err != nil {
				logger.Error("remote server failed", "addr", cfg.Remote.Addr, "error", err)
			}
		}()
	}

	var lyricsClient *lyrics.Client
	if cfg.Lyrics.Enabled {
		lyricsClient = lyrics.NewClient(cfg.Lyrics.Endpoint, time.Duration(cfg.Lyrics.Timeout)*time.Second)
	}

	return ui.Run(ctx, ui.Deps{
		Controller: ctrl,
		Catalog:    a.catalog,
		Scanner:    a.scanner,
		Watcher:    watcher,
		Folder:     folder,
		Recorder:   a.recorder,
		Playlists:  a.playlists,
		Favorites:  a.favorites,
		Lyrics:     lyricsClient,
		Window:     window,
		Logger:     logger,
		Refresh:    time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond,
		StartView:  cfg.TUI.StartView,
	})
}
