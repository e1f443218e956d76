package stats

import (
	"log/slog"
	"sync"
	"time"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/storage"
)

// TickInterval is how often listening time accrues while playing.
const TickInterval = time.Second

// TickerFunc returns a tick channel and a function that stops it.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Recorder appends play history and accrues listening time. Every mutation
// is written to the store before the call returns.
type Recorder struct {
	mu      sync.Mutex
	stats   Stats
	store   storage.Store
	logger  *slog.Logger
	now     func() time.Time
	ticker  TickerFunc
	session *Session
}

// NewRecorder creates a Recorder that persists to store under the stats key.
func NewRecorder(store storage.Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:  store,
		logger: logger,
		now:    time.Now,
		ticker: realTicker,
	}
}

// SetClock replaces the time source used for history timestamps.
func (r *Recorder) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// SetTicker replaces the tick source used by sessions.
func (r *Recorder) SetTicker(fn TickerFunc) {
	r.mu.Lock()
	r.ticker = fn
	r.mu.Unlock()
}

// Load replaces the in-memory stats with the stored copy. A missing key
// leaves empty stats.
func (r *Recorder) Load() error {
	var s Stats
	found, err := r.store.Get(storage.KeyStats, &s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if found {
		r.stats = s
	} else {
		r.stats = Stats{}
	}
	return nil
}

// Stats returns a copy of the current stats.
func (r *Recorder) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.Clone()
}

// RecordStart appends a history entry for path.
func (r *Recorder) RecordStart(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.PlayHistory = append(r.stats.PlayHistory, Entry{Path: path, Timestamp: r.now()})
	r.persistLocked()
}

// Tick adds one second of listening time.
func (r *Recorder) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.TotalTime++
	r.persistLocked()
}

func (r *Recorder) persistLocked() {
	if err := r.store.Set(storage.KeyStats, r.stats); err != nil {
		r.logger.Error("failed to save stats", "error", err)
	}
}

// TrackStarted records a history entry for the loaded song.
func (r *Recorder) TrackStarted(song library.Song) {
	r.RecordStart(song.Path)
}

// PlayingChanged starts a tick session on entering the playing state and
// stops it on leaving. Repeated calls with the same value do nothing.
func (r *Recorder) PlayingChanged(playing bool) {
	r.mu.Lock()
	if playing {
		if r.session == nil {
			r.session = startSession(r.ticker, r.Tick)
		}
		r.mu.Unlock()
		return
	}
	s := r.session
	r.session = nil
	r.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

// Close stops any running session.
func (r *Recorder) Close() {
	r.PlayingChanged(false)
}
