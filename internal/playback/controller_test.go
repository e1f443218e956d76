package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/queue"
)

type fakeResource struct {
	loaded  []string
	playing bool
	time    float64
	volume  float64
	plays   int
	pauses  int
	failing bool
	events  chan Event
}

func newFakeResource() *fakeResource {
	return &fakeResource{volume: 1, events: make(chan Event, 8)}
}

func (f *fakeResource) err() error {
	if f.failing {
		return errors.New("device busy")
	}
	return nil
}

func (f *fakeResource) Load(path string) error {
	f.loaded = append(f.loaded, path)
	f.time = 0
	return f.err()
}
func (f *fakeResource) Play() error                    { f.playing = true; f.plays++; return f.err() }
func (f *fakeResource) Pause() error                   { f.playing = false; f.pauses++; return f.err() }
func (f *fakeResource) CurrentTime() float64           { return f.time }
func (f *fakeResource) SetCurrentTime(s float64) error { f.time = s; return f.err() }
func (f *fakeResource) Volume() float64                { return f.volume }
func (f *fakeResource) SetVolume(v float64) error      { f.volume = v; return f.err() }
func (f *fakeResource) Events() <-chan Event           { return f.events }

type recordingListener struct {
	started []string
	changes []bool
}

func (r *recordingListener) TrackStarted(s library.Song) { r.started = append(r.started, s.Path) }
func (r *recordingListener) PlayingChanged(p bool)       { r.changes = append(r.changes, p) }

func makeSongs(n int) []library.Song {
	songs := make([]library.Song, n)
	for i := range songs {
		songs[i] = library.Song{Path: fmt.Sprintf("/m/%d.mp3", i), Duration: 200}
	}
	return songs
}

func setup(t *testing.T, n int) (*Controller, *fakeResource, *recordingListener, []library.Song) {
	t.Helper()
	songs := makeSongs(n)
	res := newFakeResource()
	c := New(res, library.NewCatalog(songs), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	l := &recordingListener{}
	c.AddListener(l)
	return c, res, l, songs
}

func TestPlaySongLoadsAndRecords(t *testing.T) {
	c, res, l, songs := setup(t, 3)
	if !c.PlaySong(songs[1], nil) {
		t.Fatal("PlaySong returned false")
	}
	st := c.Status()
	if st.State != Playing || st.Index != 1 || st.Song.Path != songs[1].Path {
		t.Fatalf("Status() = %+v", st)
	}
	if len(res.loaded) != 1 || res.loaded[0] != songs[1].Path || !res.playing {
		t.Fatalf("resource loaded %v playing %v", res.loaded, res.playing)
	}
	if len(l.started) != 1 || len(l.changes) != 1 || !l.changes[0] {
		t.Fatalf("listener got started=%v changes=%v", l.started, l.changes)
	}
}

func TestPlaySongNotInListIsNoop(t *testing.T) {
	c, res, l, songs := setup(t, 3)
	if c.PlaySong(library.Song{Path: "/elsewhere.mp3"}, songs[:2]) {
		t.Fatal("expected PlaySong to fail")
	}
	if len(res.loaded) != 0 || len(l.started) != 0 || c.Status().State != Stopped {
		t.Fatal("PlaySong had side effects")
	}
}

func TestTogglePlayWithoutTrackIsNoop(t *testing.T) {
	c, res, _, _ := setup(t, 2)
	c.TogglePlay()
	if res.plays != 0 || c.Status().State != Stopped {
		t.Fatal("TogglePlay acted without a loaded track")
	}
}

func TestTogglePlayFlipsState(t *testing.T) {
	c, res, l, songs := setup(t, 2)
	c.PlaySong(songs[0], nil)
	c.TogglePlay()
	if c.Status().State != Paused || res.playing {
		t.Fatal("expected paused")
	}
	c.TogglePlay()
	if c.Status().State != Playing || !res.playing {
		t.Fatal("expected playing")
	}
	if len(l.started) != 1 {
		t.Fatalf("resume recorded history: %v", l.started)
	}
	want := []bool{true, false, true}
	if fmt.Sprint(l.changes) != fmt.Sprint(want) {
		t.Fatalf("changes = %v, want %v", l.changes, want)
	}
}

func TestNextAtEndRepeatOffStops(t *testing.T) {
	c, res, l, songs := setup(t, 2)
	c.PlaySong(songs[1], nil)
	c.Next(false)

	st := c.Status()
	if st.State != Stopped || st.Index != 1 {
		t.Fatalf("Status() = %+v, want Stopped at 1", st)
	}
	if res.playing {
		t.Fatal("resource still playing")
	}
	if l.changes[len(l.changes)-1] {
		t.Fatal("listener not told playback stopped")
	}

	// The retained track resumes without a new history entry.
	c.TogglePlay()
	if c.Status().State != Playing || len(l.started) != 1 {
		t.Fatalf("resume from stopped: state %v started %v", c.Status().State, l.started)
	}
}

func TestNextRepeatAllWraps(t *testing.T) {
	c, res, _, songs := setup(t, 2)
	c.SetRepeat(queue.RepeatAll)
	c.PlaySong(songs[1], nil)
	c.Next(false)
	if st := c.Status(); st.Index != 0 || st.State != Playing {
		t.Fatalf("Status() = %+v, want Playing at 0", st)
	}
	if res.loaded[len(res.loaded)-1] != songs[0].Path {
		t.Fatalf("loaded %v", res.loaded)
	}
}

func TestNextOnEmptyQueueIsNoop(t *testing.T) {
	c, res, l, _ := setup(t, 0)
	c.Next(false)
	c.Prev()
	if len(res.loaded) != 0 || len(l.changes) != 0 {
		t.Fatal("empty queue produced side effects")
	}
}

func TestPrevThreshold(t *testing.T) {
	c, res, l, songs := setup(t, 3)
	c.PlaySong(songs[1], nil)

	res.time = 3.01
	c.Prev()
	if st := c.Status(); st.Index != 1 || res.time != 0 {
		t.Fatalf("restart: index %d time %v", st.Index, res.time)
	}
	if len(l.started) != 1 {
		t.Fatal("restart recorded history")
	}

	res.time = 2.99
	c.Prev()
	if st := c.Status(); st.Index != 0 || st.Song.Path != songs[0].Path {
		t.Fatalf("move back: %+v", st)
	}
}

func TestPrevAtStart(t *testing.T) {
	c, _, _, songs := setup(t, 3)
	c.PlaySong(songs[0], nil)
	c.Prev()
	if c.Status().Index != 0 {
		t.Fatal("Prev at start with repeat off should not move")
	}
	c.SetRepeat(queue.RepeatAll)
	c.Prev()
	if c.Status().Index != 2 {
		t.Fatalf("Prev wrap index = %d, want 2", c.Status().Index)
	}
}

func TestEndedRepeatOneRestartsSameTrack(t *testing.T) {
	c, res, l, songs := setup(t, 3)
	c.SetRepeat(queue.RepeatOne)
	c.PlaySong(songs[1], nil)
	res.time = 200
	res.playing = false

	c.HandleEvent(Event{Kind: Ended, Path: songs[1].Path})
	st := c.Status()
	if st.Index != 1 || st.Song.Path != songs[1].Path || st.State != Playing {
		t.Fatalf("Status() = %+v", st)
	}
	if res.time != 0 || !res.playing || len(res.loaded) != 1 {
		t.Fatalf("resource time %v playing %v loads %v", res.time, res.playing, res.loaded)
	}
	if len(l.started) != 1 {
		t.Fatal("repeat-one restart recorded history")
	}
}

func TestEndedAdvances(t *testing.T) {
	c, _, l, songs := setup(t, 3)
	c.PlaySong(songs[0], nil)
	c.HandleEvent(Event{Kind: Ended, Path: songs[0].Path})
	if c.Status().Index != 1 || len(l.started) != 2 {
		t.Fatalf("index %d started %v", c.Status().Index, l.started)
	}
}

func TestStaleEventsIgnored(t *testing.T) {
	c, _, _, songs := setup(t, 3)
	c.PlaySong(songs[0], nil)
	c.PlaySong(songs[2], nil)

	c.HandleEvent(Event{Kind: Ended, Path: songs[0].Path})
	c.HandleEvent(Event{Kind: TimeUpdate, Path: songs[0].Path, Time: 50})
	st := c.Status()
	if st.Index != 2 || st.Elapsed != 0 {
		t.Fatalf("stale event applied: %+v", st)
	}
}

func TestTimeAndMetadataEvents(t *testing.T) {
	c, _, _, songs := setup(t, 1)
	c.PlaySong(songs[0], nil)
	c.HandleEvent(Event{Kind: TimeUpdate, Path: songs[0].Path, Time: 12.5})
	c.HandleEvent(Event{Kind: LoadedMetadata, Path: songs[0].Path, Duration: 321})
	st := c.Status()
	if st.Elapsed != 12.5 || st.Duration != 321 {
		t.Fatalf("Status() = %+v", st)
	}
}

func TestSeekUpdatesElapsedImmediately(t *testing.T) {
	c, res, _, songs := setup(t, 1)
	c.PlaySong(songs[0], nil)
	c.Seek(42)
	if c.Status().Elapsed != 42 || res.time != 42 {
		t.Fatalf("elapsed %v resource %v", c.Status().Elapsed, res.time)
	}
}

func TestSetVolumeForwardsUnclamped(t *testing.T) {
	c, res, _, _ := setup(t, 1)
	c.SetVolume(1.5)
	if res.volume != 1.5 || c.Status().Volume != 1.5 {
		t.Fatalf("volume %v", res.volume)
	}
}

func TestCommandFailuresDoNotChangeState(t *testing.T) {
	c, res, _, songs := setup(t, 2)
	res.failing = true
	c.PlaySong(songs[0], nil)
	if c.Status().State != Playing {
		t.Fatal("state should follow the command, not its result")
	}
}

func TestShuffleToggleKeepsTrack(t *testing.T) {
	c, res, _, songs := setup(t, 6)
	c.PlaySong(songs[3], nil)
	if !c.ToggleShuffle() {
		t.Fatal("expected shuffle on")
	}
	st := c.Status()
	if st.Index != 0 || st.Song.Path != songs[3].Path {
		t.Fatalf("after shuffle on: %+v", st)
	}
	if c.ToggleShuffle() {
		t.Fatal("expected shuffle off")
	}
	if st := c.Status(); st.Index != 3 {
		t.Fatalf("after shuffle off index = %d, want 3", st.Index)
	}
	if len(res.loaded) != 1 {
		t.Fatal("shuffle toggle reloaded the track")
	}
}

func TestCycleRepeat(t *testing.T) {
	c, _, _, _ := setup(t, 1)
	if c.CycleRepeat() != queue.RepeatAll || c.CycleRepeat() != queue.RepeatOne || c.CycleRepeat() != queue.RepeatOff {
		t.Fatal("unexpected repeat cycle")
	}
}

func TestRunConsumesEvents(t *testing.T) {
	c, res, _, songs := setup(t, 2)
	c.PlaySong(songs[0], nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	res.events <- Event{Kind: TimeUpdate, Path: songs[0].Path, Time: 7}
	deadline := time.Now().Add(2 * time.Second)
	for c.Status().Elapsed != 7 {
		if time.Now().After(deadline) {
			t.Fatal("event not consumed")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
}
