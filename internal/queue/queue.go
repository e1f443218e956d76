package queue

import "github.com/olivier-w/crossroads/internal/library"

// Move reports what a Next or Prev call did to the position.
type Move int

const (
	// Stay means the position did not change.
	Stay Move = iota
	// Stepped means a different index became current and should be loaded.
	Stepped
	// Ended means the end of the queue was reached with repeat off.
	// The position is retained.
	Ended
)

// State is the play queue: a linear list, a shuffled permutation of it and
// the current position within whichever one is active.
//
// The current index is always -1 or a valid index into the active list.
// State is not safe for concurrent use; the playback controller owns it.
type State struct {
	linear   []library.Song
	shuffled []library.Song
	current  int
	shuffle  bool
	repeat   RepeatMode
	src      Source
}

// New creates an empty queue. A nil src uses the global random generator.
func New(src Source) *State {
	return &State{current: -1, src: src}
}

// Active returns the list governing playback order.
func (q *State) Active() []library.Song {
	if q.shuffle {
		return q.shuffled
	}
	return q.linear
}

// Linear returns the queue in insertion order.
func (q *State) Linear() []library.Song {
	return q.linear
}

// Len returns the number of songs in the active list.
func (q *State) Len() int {
	return len(q.Active())
}

// CurrentIndex returns the current position, or -1 if nothing is selected.
func (q *State) CurrentIndex() int {
	return q.current
}

// Current returns the song at the current position.
func (q *State) Current() (library.Song, bool) {
	active := q.Active()
	if q.current < 0 || q.current >= len(active) {
		return library.Song{}, false
	}
	return active[q.current], true
}

// Shuffled reports whether shuffle mode is on.
func (q *State) Shuffled() bool {
	return q.shuffle
}

// Repeat returns the repeat mode.
func (q *State) Repeat() RepeatMode {
	return q.repeat
}

// CycleRepeat advances the repeat mode and returns the new one.
func (q *State) CycleRepeat() RepeatMode {
	q.repeat = q.repeat.Next()
	return q.repeat
}

// SetRepeat sets the repeat mode directly.
func (q *State) SetRepeat(r RepeatMode) {
	q.repeat = r
}

// Establish makes list the new linear queue and selects song within it.
// With shuffle on, a fresh shuffled list pinned on song is built and the
// position is 0. Returns false and leaves the queue untouched when song is
// not in list.
func (q *State) Establish(list []library.Song, song library.Song) bool {
	idx := indexOf(list, song.Path)
	if idx < 0 {
		return false
	}
	q.linear = list
	if q.shuffle {
		q.shuffled = Shuffle(list, song.Path, q.src)
		q.current = 0
		return true
	}
	q.shuffled = nil
	q.current = idx
	return true
}

// Next advances the position. At the last index it wraps to 0 under
// RepeatAll and otherwise reports Ended without moving.
func (q *State) Next() Move {
	n := q.Len()
	if n == 0 {
		return Stay
	}
	if q.current < n-1 {
		q.current++
		return Stepped
	}
	if q.repeat == RepeatAll {
		q.current = 0
		return Stepped
	}
	return Ended
}

// Prev moves back one position. At index 0 it wraps to the last index under
// RepeatAll and otherwise stays put.
func (q *State) Prev() Move {
	n := q.Len()
	if n == 0 {
		return Stay
	}
	if q.current > 0 {
		q.current--
		return Stepped
	}
	if q.repeat == RepeatAll {
		q.current = n - 1
		return Stepped
	}
	return Stay
}

// ToggleShuffle flips shuffle mode without changing the playing song.
//
// Turning it on shuffles the linear queue (catalog when the queue is empty)
// pinned on the current song, or on the first catalog song when nothing is
// selected, and moves the position to 0. Turning it off points the position
// at the current song within the linear queue, or 0 if it is not there.
func (q *State) ToggleShuffle(catalog []library.Song) bool {
	if !q.shuffle {
		pin, ok := q.Current()
		if !ok && len(catalog) > 0 {
			pin = catalog[0]
		}
		base := q.linear
		if len(base) == 0 {
			base = catalog
		}
		q.linear = base
		q.shuffled = Shuffle(base, pin.Path, q.src)
		q.shuffle = true
		q.current = 0
		if len(q.shuffled) == 0 {
			q.current = -1
		}
		return true
	}

	cur, ok := q.Current()
	q.shuffle = false
	q.shuffled = nil
	if !ok {
		if q.current >= len(q.linear) {
			q.current = -1
		}
		return false
	}
	q.current = indexOf(q.linear, cur.Path)
	if q.current < 0 && len(q.linear) > 0 {
		q.current = 0
	}
	return false
}

// Peek returns up to n songs after the current one in the active list.
func (q *State) Peek(n int) []library.Song {
	active := q.Active()
	start := q.current + 1
	if start >= len(active) || n <= 0 {
		return nil
	}
	end := min(start+n, len(active))
	out := make([]library.Song, end-start)
	copy(out, active[start:end])
	return out
}

func indexOf(songs []library.Song, path string) int {
	for i, s := range songs {
		if s.Path == path {
			return i
		}
	}
	return -1
}
