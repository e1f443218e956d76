package stats

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/storage"
)

type fakeTicker struct {
	ch      chan time.Time
	started int
	stopped int
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) fn(time.Duration) (<-chan time.Time, func()) {
	f.started++
	return f.ch, func() { f.stopped++ }
}

func newTestRecorder(t *testing.T) (*Recorder, *storage.Memory, *fakeTicker) {
	t.Helper()
	store := storage.NewMemory()
	r := NewRecorder(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ft := newFakeTicker()
	r.SetTicker(ft.fn)
	return r, store, ft
}

func waitForTotal(t *testing.T, r *Recorder, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Stats().TotalTime == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("TotalTime = %d, want %d", r.Stats().TotalTime, want)
}

func TestRecordStartIsWriteThrough(t *testing.T) {
	r, store, _ := newTestRecorder(t)
	at := time.UnixMilli(1_700_000_000_123)
	r.SetClock(func() time.Time { return at })

	r.TrackStarted(library.Song{Path: "/m/a.flac"})
	r.RecordStart("/m/b.flac")

	var saved Stats
	if found, err := store.Get(storage.KeyStats, &saved); err != nil || !found {
		t.Fatalf("store.Get() = %v, %v", found, err)
	}
	if len(saved.PlayHistory) != 2 || saved.PlayHistory[1].Path != "/m/b.flac" {
		t.Fatalf("saved history = %+v", saved.PlayHistory)
	}
	if !saved.PlayHistory[0].Timestamp.Equal(at) {
		t.Fatalf("timestamp = %v, want %v", saved.PlayHistory[0].Timestamp, at)
	}
}

func TestTicksAccrueOnlyWhilePlaying(t *testing.T) {
	r, store, ft := newTestRecorder(t)

	r.PlayingChanged(true)
	r.PlayingChanged(true)
	if ft.started != 1 {
		t.Fatalf("ticker started %d times, want 1", ft.started)
	}

	ft.ch <- time.Now()
	ft.ch <- time.Now()
	waitForTotal(t, r, 2)

	r.PlayingChanged(false)
	if ft.stopped != 1 {
		t.Fatalf("ticker stopped %d times, want 1", ft.stopped)
	}

	select {
	case ft.ch <- time.Now():
		t.Fatal("tick was consumed after the session stopped")
	case <-time.After(20 * time.Millisecond):
	}

	var saved Stats
	store.Get(storage.KeyStats, &saved)
	if saved.TotalTime != 2 {
		t.Fatalf("persisted TotalTime = %d, want 2", saved.TotalTime)
	}
}

func TestPauseResumeStartsFreshSession(t *testing.T) {
	r, _, ft := newTestRecorder(t)
	r.PlayingChanged(true)
	r.PlayingChanged(false)
	r.PlayingChanged(true)
	defer r.Close()

	if ft.started != 2 {
		t.Fatalf("ticker started %d times, want 2", ft.started)
	}
	ft.ch <- time.Now()
	waitForTotal(t, r, 1)
}

func TestLoadRestoresStoredStats(t *testing.T) {
	r, store, _ := newTestRecorder(t)
	store.Set(storage.KeyStats, Stats{
		TotalTime:   90,
		PlayHistory: []Entry{{Path: "/m/x.mp3", Timestamp: time.UnixMilli(5000)}},
	})

	if err := r.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := r.Stats()
	if got.TotalTime != 90 || len(got.PlayHistory) != 1 {
		t.Fatalf("Stats() = %+v", got)
	}
	if got.Listening() != 90*time.Second {
		t.Fatalf("Listening() = %v", got.Listening())
	}
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	r, _, _ := newTestRecorder(t)
	if err := r.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := r.Stats(); got.TotalTime != 0 || len(got.PlayHistory) != 0 {
		t.Fatalf("Stats() = %+v, want empty", got)
	}
}

func TestEntryJSONUsesMillis(t *testing.T) {
	data, err := json.Marshal(Entry{Path: "/a", Timestamp: time.UnixMilli(1234)})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"timestamp":1234`) {
		t.Fatalf("json = %s", data)
	}
	var e Entry
	if err := json.Unmarshal([]byte(`{"path":"/b","timestamp":99}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.Path != "/b" || e.Timestamp.UnixMilli() != 99 {
		t.Fatalf("Unmarshal() = %+v", e)
	}
}

func TestStatsCloneIsIndependent(t *testing.T) {
	r, _, _ := newTestRecorder(t)
	r.RecordStart("/a")
	snap := r.Stats()
	snap.PlayHistory[0].Path = "/changed"
	if r.Stats().PlayHistory[0].Path != "/a" {
		t.Fatal("Stats() shares memory with the recorder")
	}
}
