package smart

import (
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/stats"
)

// PathCount is a path and how many times it was played.
type PathCount struct {
	Path  string
	Count int
}

// CountPlays tallies entries per path, highest count first. Ties keep the
// order in which paths were first encountered.
func CountPlays(history []stats.Entry) []PathCount {
	var counts []PathCount
	index := make(map[string]int)
	for _, e := range history {
		i, ok := index[e.Path]
		if !ok {
			i = len(counts)
			index[e.Path] = i
			counts = append(counts, PathCount{Path: e.Path})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool { return counts[a].Count > counts[b].Count })
	return counts
}

// RecentOf returns distinct songs from newest play to oldest.
func RecentOf(history []stats.Entry, catalog *library.Catalog) []library.Song {
	paths := lo.Map(history, func(e stats.Entry, _ int) string { return e.Path })
	slices.Reverse(paths)
	return capSongs(catalog.Resolve(lo.Uniq(paths)), Limit)
}

// TopTracksOf returns the most played songs. The cap applies before
// resolution, so removed songs can shorten the list.
func TopTracksOf(history []stats.Entry, catalog *library.Catalog) []library.Song {
	counts := CountPlays(history)
	counts = counts[:min(len(counts), Limit)]
	return catalog.Resolve(lo.Map(counts, func(c PathCount, _ int) string { return c.Path }))
}

// TopArtist returns the artist with the most resolvable plays. Ties go to
// the artist encountered first.
func TopArtist(history []stats.Entry, catalog *library.Catalog) (string, bool) {
	var (
		order  []string
		counts = make(map[string]int)
	)
	for _, e := range history {
		song, ok := catalog.Lookup(e.Path)
		if !ok {
			continue
		}
		if _, seen := counts[song.Artist]; !seen {
			order = append(order, song.Artist)
		}
		counts[song.Artist]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, a := range order[1:] {
		if counts[a] > counts[best] {
			best = a
		}
	}
	return best, true
}

// RecommendationsOf returns catalog songs by the top artist that are not
// among the last RecentWindow plays.
func RecommendationsOf(history []stats.Entry, catalog *library.Catalog) []library.Song {
	artist, ok := TopArtist(history, catalog)
	if !ok {
		return nil
	}
	tail := history[max(0, len(history)-RecentWindow):]
	heard := lo.SliceToMap(tail, func(e stats.Entry) (string, struct{}) {
		return e.Path, struct{}{}
	})
	picks := lo.Filter(catalog.Songs(), func(s library.Song, _ int) bool {
		_, recent := heard[s.Path]
		return s.Artist == artist && !recent
	})
	return capSongs(picks, Limit)
}

func capSongs(songs []library.Song, n int) []library.Song {
	if len(songs) > n {
		return songs[:n]
	}
	return songs
}
