package playback

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/queue"
)

// RestartThreshold is the elapsed time after which Prev restarts the
// current track instead of moving back.
const RestartThreshold = 3.0

// State is the transport state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Listener observes the controller. Callbacks run with the controller lock
// held and must not call back into it.
type Listener interface {
	// TrackStarted fires each time a new track is loaded and started.
	TrackStarted(song library.Song)
	// PlayingChanged fires when the state enters or leaves Playing.
	PlayingChanged(playing bool)
}

// Status is a point-in-time view of the controller.
type Status struct {
	State    State
	Song     library.Song
	Loaded   bool
	Index    int
	QueueLen int
	Elapsed  float64
	Duration float64
	Volume   float64
	Shuffle  bool
	Repeat   queue.RepeatMode
}

// Controller couples the play queue with an audio Resource. It is safe for
// concurrent use: resource events, the UI and the remote server all call in.
type Controller struct {
	mu        sync.Mutex
	res       Resource
	queue     *queue.State
	catalog   *library.Catalog
	listeners []Listener
	logger    *slog.Logger

	state    State
	loaded   library.Song
	isLoaded bool
	elapsed  float64
	duration float64
	volume   float64
}

// New creates a Controller. src seeds shuffles; nil uses the global source.
func New(res Resource, catalog *library.Catalog, src queue.Source, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		res:     res,
		queue:   queue.New(src),
		catalog: catalog,
		logger:  logger,
		volume:  res.Volume(),
	}
}

// AddListener registers l for track and state notifications.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// PlaySong makes list the queue and starts song. A nil list means the whole
// catalog. Returns false without side effects if song is not in list.
func (c *Controller) PlaySong(song library.Song, list []library.Song) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if list == nil {
		list = c.catalog.Songs()
	}
	if !c.queue.Establish(list, song) {
		c.logger.Debug("song not in queue", "path", song.Path)
		return false
	}
	c.startCurrentLocked()
	return true
}

// TogglePlay flips between playing and paused. Does nothing when no track
// has been loaded. From Stopped it resumes the retained track.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isLoaded {
		return
	}
	if c.state == Playing {
		c.command("pause", c.res.Pause())
		c.setStateLocked(Paused)
		return
	}
	c.command("play", c.res.Play())
	c.setStateLocked(Playing)
}

// Next advances to the following track. auto marks a track-end advance and
// is informational only.
func (c *Controller) Next(auto bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextLocked(auto)
}

func (c *Controller) nextLocked(auto bool) {
	switch c.queue.Next() {
	case queue.Stepped:
		c.startCurrentLocked()
	case queue.Ended:
		c.logger.Debug("end of queue", "auto", auto)
		if c.isLoaded {
			c.command("pause", c.res.Pause())
		}
		c.setStateLocked(Stopped)
	}
}

// Prev restarts the current track when more than RestartThreshold seconds
// have elapsed, otherwise moves back one track.
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isLoaded && c.res.CurrentTime() > RestartThreshold {
		c.command("seek", c.res.SetCurrentTime(0))
		c.elapsed = 0
		return
	}
	if c.queue.Prev() == queue.Stepped {
		c.startCurrentLocked()
	}
}

// HandleEvent applies a resource event. Events for a track other than the
// loaded one are ignored.
func (c *Controller) HandleEvent(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isLoaded || ev.Path != c.loaded.Path {
		return
	}
	switch ev.Kind {
	case TimeUpdate:
		c.elapsed = ev.Time
	case LoadedMetadata:
		c.duration = ev.Duration
	case Ended:
		if c.queue.Repeat() == queue.RepeatOne {
			c.command("seek", c.res.SetCurrentTime(0))
			c.command("play", c.res.Play())
			c.elapsed = 0
			c.setStateLocked(Playing)
			return
		}
		c.nextLocked(true)
	}
}

// Seek moves the play position. The observed time updates immediately.
func (c *Controller) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isLoaded {
		return
	}
	c.command("seek", c.res.SetCurrentTime(seconds))
	c.elapsed = seconds
}

// SetVolume forwards v to the resource unchanged.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.command("volume", c.res.SetVolume(v))
	c.volume = v
}

// ToggleShuffle flips shuffle mode without interrupting the current track
// and returns the new mode.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.ToggleShuffle(c.catalog.Songs())
}

// CycleRepeat advances Off -> All -> One -> Off and returns the new mode.
func (c *Controller) CycleRepeat() queue.RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.CycleRepeat()
}

// SetRepeat sets the repeat mode directly.
func (c *Controller) SetRepeat(r queue.RepeatMode) {
	c.mu.Lock()
	c.queue.SetRepeat(r)
	c.mu.Unlock()
}

// Status returns the current transport and queue state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:    c.state,
		Song:     c.loaded,
		Loaded:   c.isLoaded,
		Index:    c.queue.CurrentIndex(),
		QueueLen: c.queue.Len(),
		Elapsed:  c.elapsed,
		Duration: c.duration,
		Volume:   c.volume,
		Shuffle:  c.queue.Shuffled(),
		Repeat:   c.queue.Repeat(),
	}
}

// UpNext returns up to n songs after the current one.
func (c *Controller) UpNext(n int) []library.Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Peek(n)
}

// Run feeds resource events into HandleEvent until ctx is done or the
// event channel closes.
func (c *Controller) Run(ctx context.Context) {
	events := c.res.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.HandleEvent(ev)
		}
	}
}

// Stop halts playback and ends any playing session. The queue is kept.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isLoaded && c.state == Playing {
		c.command("pause", c.res.Pause())
	}
	c.setStateLocked(Stopped)
}

func (c *Controller) startCurrentLocked() {
	song, ok := c.queue.Current()
	if !ok {
		return
	}
	c.loaded = song
	c.isLoaded = true
	c.elapsed = 0
	c.duration = song.Duration
	c.command("load", c.res.Load(song.Path))
	c.command("play", c.res.Play())
	for _, l := range c.listeners {
		l.TrackStarted(song)
	}
	c.setStateLocked(Playing)
}

func (c *Controller) setStateLocked(s State) {
	prev := c.state
	c.state = s
	if (prev == Playing) == (s == Playing) {
		return
	}
	for _, l := range c.listeners {
		l.PlayingChanged(s == Playing)
	}
}

func (c *Controller) command(name string, err error) {
	if err != nil {
		c.logger.Warn("audio command failed", "command", name, "path", c.loaded.Path, "error", err)
	}
}
