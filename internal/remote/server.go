// Package remote exposes transport controls and listening stats over a
// small local HTTP API.
package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/playback"
	"github.com/olivier-w/crossroads/internal/playlist"
	"github.com/olivier-w/crossroads/internal/queue"
	"github.com/olivier-w/crossroads/internal/smart"
	"github.com/olivier-w/crossroads/internal/stats"
)

// Transport is the subset of the playback controller the remote drives.
type Transport interface {
	Status() playback.Status
	TogglePlay()
	Next(auto bool)
	Prev()
	ToggleShuffle() bool
	CycleRepeat() queue.RepeatMode
}

// Deps wires the server to the running player.
type Deps struct {
	Player    Transport
	Stats     func() stats.Stats
	Catalog   *library.Catalog
	Playlists *playlist.Store
	Favorites *playlist.Favorites
	Now       func() time.Time
	Logger    *slog.Logger
}

// Server is the HTTP remote.
type Server struct {
	deps   Deps
	engine *gin.Engine
}

// New builds the router. gin's mode is left to the caller.
func New(deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	s := &Server{deps: deps, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.logRequests())
	s.routes()
	return s
}

// Handler returns the router for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/status", s.getStatus)
	r.POST("/play-pause", s.transport(func(p Transport) { p.TogglePlay() }))
	r.POST("/next", s.transport(func(p Transport) { p.Next(false) }))
	r.POST("/prev", s.transport(func(p Transport) { p.Prev() }))
	r.POST("/shuffle", s.transport(func(p Transport) { p.ToggleShuffle() }))
	r.POST("/repeat", s.transport(func(p Transport) { p.CycleRepeat() }))
	r.GET("/stats/top", s.getTopSongs)
	r.GET("/stats/dashboard", s.getDashboard)
	r.GET("/playlists", s.getPlaylists)
	r.GET("/smart/:kind", s.getSmart)
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.deps.Logger.Info("remote listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.deps.Logger.Debug("remote request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

func (s *Server) input() smart.Input {
	in := smart.Input{Catalog: s.deps.Catalog}
	if s.deps.Stats != nil {
		in.Stats = s.deps.Stats()
	}
	if s.deps.Favorites != nil {
		in.Favorites = s.deps.Favorites.Paths()
	}
	if in.Catalog == nil {
		in.Catalog = library.NewCatalog(nil)
	}
	return in
}

func parseWindow(c *gin.Context) (smart.Window, bool) {
	w, err := smart.ParseWindow(c.Query("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return w, true
}
