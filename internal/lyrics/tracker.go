package lyrics

import "sync"

// Ticket identifies one fetch. It is valid until the next Begin.
type Ticket struct {
	Gen  uint64
	Path string
}

// Tracker discards fetch results that arrive after the current track has
// changed.
type Tracker struct {
	mu   sync.Mutex
	gen  uint64
	path string
}

// Begin starts a fetch for path, superseding any fetch in flight.
func (t *Tracker) Begin(path string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.path = path
	return Ticket{Gen: t.gen, Path: path}
}

// Current reports whether tk is still the latest fetch.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk.Gen == t.gen && tk.Path == t.path
}

// Path returns the path of the latest fetch.
func (t *Tracker) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}
