package smart

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/stats"
)

// Window restricts dashboard aggregation to recent history.
type Window string

const (
	Today    Window = "today"
	Week     Window = "7d"
	Days28   Window = "28d"
	Days90   Window = "90d"
	Year     Window = "1y"
	Lifetime Window = "lifetime"
)

// TopSongsLimit caps the dashboard ranking.
const TopSongsLimit = 10

const day = 24 * time.Hour

// Windows lists the windows in display order.
func Windows() []Window {
	return []Window{Today, Week, Days28, Days90, Year, Lifetime}
}

// ParseWindow validates a window id. Empty means Lifetime.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return Lifetime, nil
	}
	for _, w := range Windows() {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown window %q (must be today, 7d, 28d, 90d, 1y, or lifetime)", s)
}

// Span returns the window length. Lifetime reports false.
func (w Window) Span() (time.Duration, bool) {
	switch w {
	case Today:
		return day, true
	case Week:
		return 7 * day, true
	case Days28:
		return 28 * day, true
	case Days90:
		return 90 * day, true
	case Year:
		return 365 * day, true
	}
	return 0, false
}

// Label returns the display name.
func (w Window) Label() string {
	switch w {
	case Today:
		return "Today"
	case Week:
		return "7 Days"
	case Days28:
		return "28 Days"
	case Days90:
		return "90 Days"
	case Year:
		return "1 Year"
	}
	return "Lifetime"
}

// Filter keeps entries with now - timestamp < span.
func (w Window) Filter(history []stats.Entry, now time.Time) []stats.Entry {
	span, ok := w.Span()
	if !ok {
		return history
	}
	return lo.Filter(history, func(e stats.Entry, _ int) bool {
		return now.Sub(e.Timestamp) < span
	})
}

// RankedSong is a song with its play count.
type RankedSong struct {
	library.Song
	Count int
}

// TopSongs ranks songs played within w. The limit applies before
// resolution, so removed songs can shorten the list.
func TopSongs(history []stats.Entry, catalog *library.Catalog, w Window, now time.Time, limit int) []RankedSong {
	counts := CountPlays(w.Filter(history, now))
	counts = counts[:min(len(counts), limit)]
	var out []RankedSong
	for _, c := range counts {
		if song, ok := catalog.Lookup(c.Path); ok {
			out = append(out, RankedSong{Song: song, Count: c.Count})
		}
	}
	return out
}

// Dashboard summarizes listening within a window.
type Dashboard struct {
	Window       Window
	TopSongs     []RankedSong
	Plays        int
	UniqueTracks int
	// Listening is lifetime total listening time, independent of Window.
	Listening time.Duration
}

// TotalHours returns lifetime listening time in hours.
func (d Dashboard) TotalHours() float64 {
	return d.Listening.Hours()
}

// BuildDashboard aggregates in.Stats for w as of now.
func BuildDashboard(in Input, w Window, now time.Time) Dashboard {
	windowed := w.Filter(in.Stats.PlayHistory, now)
	return Dashboard{
		Window:       w,
		TopSongs:     TopSongs(in.Stats.PlayHistory, in.Catalog, w, now, TopSongsLimit),
		Plays:        len(windowed),
		UniqueTracks: len(lo.UniqBy(windowed, func(e stats.Entry) string { return e.Path })),
		Listening:    in.Stats.Listening(),
	}
}
