// Package player plays local audio files through oto and reports progress
// as playback events.
package player

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/crossroads/internal/playback"
)

// UpdateInterval is how often TimeUpdate events are emitted while playing.
const UpdateInterval = 250 * time.Millisecond

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// track is one opened file and its decode chain.
type track struct {
	path    string
	file    *os.File
	dec     audioDecoder
	counter *countingReader
	resamp  *resampler
	out     *oto.Player
	stop    chan struct{}
}

func (t *track) source() io.Reader {
	if t.resamp != nil {
		return t.resamp
	}
	return t.counter
}

// bytesPerSec is the decoder's output byte rate.
func (t *track) bytesPerSec() float64 {
	return float64(t.dec.SampleRate() * t.dec.ChannelCount() * 2)
}

// Player is an oto-backed playback.Resource. A single oto context is shared
// for the process; each Load opens a fresh decode chain.
type Player struct {
	mu      sync.Mutex
	cur     *track
	volume  float64
	playing bool
	ended   bool
	events  chan playback.Event
	logger  *slog.Logger
	closed  bool
}

// New creates a Player at volume (0..1).
func New(volume float64, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		volume: clampVolume(volume),
		events: make(chan playback.Event, 16),
		logger: logger,
	}
}

// Events implements playback.Resource.
func (p *Player) Events() <-chan playback.Event {
	return p.events
}

// Load implements playback.Resource. The track starts paused.
func (p *Player) Load(path string) error {
	ctx, err := initOto()
	if err != nil {
		return fmt.Errorf("initializing audio output: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	dec, err := openDecoder(f)
	if err != nil {
		f.Close()
		return err
	}
	if dec.SampleRate() <= 0 || dec.ChannelCount() <= 0 {
		f.Close()
		return fmt.Errorf("%s: invalid stream format", path)
	}

	t := &track{
		path:    path,
		file:    f,
		dec:     dec,
		counter: &countingReader{reader: dec},
		stop:    make(chan struct{}),
	}
	if !passthrough(dec.SampleRate(), dec.ChannelCount()) {
		t.resamp = newResampler(t.counter, dec.SampleRate(), dec.ChannelCount())
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		f.Close()
		return errors.New("player closed")
	}
	old := p.cur
	t.out = ctx.NewPlayer(t.source())
	t.out.SetVolume(p.volume)
	p.cur = t
	p.playing = false
	p.ended = false
	p.mu.Unlock()

	if old != nil {
		old.close()
	}

	go p.monitor(t)
	return nil
}

// Play implements playback.Resource. A track that has ended restarts.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return errors.New("no track loaded")
	}
	if p.ended {
		if err := p.seekLocked(0); err != nil {
			return err
		}
		p.ended = false
	}
	p.cur.out.Play()
	p.playing = true
	return nil
}

// Pause implements playback.Resource.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return nil
	}
	p.cur.out.Pause()
	p.playing = false
	return nil
}

// CurrentTime implements playback.Resource.
func (p *Player) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return 0
	}
	return float64(p.cur.counter.Pos()) / p.cur.bytesPerSec()
}

// SetCurrentTime implements playback.Resource.
func (p *Player) SetCurrentTime(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return errors.New("no track loaded")
	}
	offset := int64(seconds * p.cur.bytesPerSec())
	if err := p.seekLocked(offset); err != nil {
		return err
	}
	p.ended = false
	return nil
}

// seekLocked moves the decoder and rebuilds the oto player to flush its
// buffer.
func (p *Player) seekLocked(offset int64) error {
	t := p.cur
	frame := int64(t.dec.ChannelCount() * 2)
	offset = alignOffset(offset, t.dec.Length(), frame)
	if _, err := t.dec.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	t.counter.Reset(offset)
	if t.resamp != nil {
		t.resamp.reset()
	}
	t.out.Pause()
	t.out = globalOtoCtx.NewPlayer(t.source())
	t.out.SetVolume(p.volume)
	if p.playing {
		t.out.Play()
	}
	return nil
}

// alignOffset clamps offset to [0, length] and rounds down to a frame.
func alignOffset(offset, length, frame int64) int64 {
	offset = min(max(offset, 0), length)
	return offset - offset%frame
}

// Volume implements playback.Resource.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume implements playback.Resource. Output volume is clamped to 0..1.
func (p *Player) SetVolume(v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(v)
	if p.cur != nil {
		p.cur.out.SetVolume(p.volume)
	}
	return nil
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

// Close stops playback and releases the open file.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	t := p.cur
	p.cur = nil
	p.mu.Unlock()
	if t != nil {
		t.close()
	}
}

func (t *track) close() {
	close(t.stop)
	t.out.Pause()
	_ = t.file.Close()
}

// monitor announces t's metadata, then emits TimeUpdate while t plays and
// Ended once it runs out.
func (p *Player) monitor(t *track) {
	duration := float64(t.dec.Length()) / t.bytesPerSec()
	p.emit(t, playback.Event{Kind: playback.LoadedMetadata, Path: t.path, Duration: duration})

	ticker := time.NewTicker(UpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.cur != t {
			p.mu.Unlock()
			return
		}
		playing := p.playing
		pos := float64(t.counter.Pos()) / t.bytesPerSec()
		finished := playing && t.counter.EOF() && !t.out.IsPlaying()
		if finished {
			p.playing = false
			p.ended = true
		}
		p.mu.Unlock()

		if finished {
			p.emit(t, playback.Event{Kind: playback.Ended, Path: t.path})
			continue
		}
		if playing {
			select {
			case p.events <- playback.Event{Kind: playback.TimeUpdate, Path: t.path, Time: pos}:
			default:
			}
		}
	}
}

// emit delivers ev unless t has been replaced or closed first.
func (p *Player) emit(t *track, ev playback.Event) {
	select {
	case p.events <- ev:
	case <-t.stop:
		p.logger.Debug("dropped event for closed track", "kind", ev.Kind, "path", t.path)
	}
}
