// Package smart derives playlists and dashboard rankings from listening
// history. Everything here is a pure function of its inputs.
package smart

import (
	"fmt"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/stats"
)

// Kind identifies one of the fixed smart playlists.
type Kind string

const (
	Favorites       Kind = "favorites"
	TopTracks       Kind = "top-tracks"
	Recent          Kind = "recent"
	Recommendations Kind = "recommendations"
)

// Limit caps the length of the history-derived playlists.
const Limit = 30

// RecentWindow is how many trailing history entries Recommendations treats
// as already heard.
const RecentWindow = 50

// Kinds lists the smart playlists in display order.
func Kinds() []Kind {
	return []Kind{Favorites, TopTracks, Recent, Recommendations}
}

// Name returns the display name.
func (k Kind) Name() string {
	switch k {
	case Favorites:
		return "Favorites"
	case TopTracks:
		return "Top Tracks"
	case Recent:
		return "Recently Played"
	case Recommendations:
		return "Discovery"
	}
	return string(k)
}

// ParseKind validates a kind id.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown smart playlist %q (must be favorites, top-tracks, recent, or recommendations)", s)
}

// Input is everything a smart playlist is computed from.
type Input struct {
	Stats     stats.Stats
	Favorites []string
	Catalog   *library.Catalog
}

// Evaluate returns the songs of the smart playlist kind. Paths that no
// longer resolve to a catalog song are dropped.
func Evaluate(kind Kind, in Input) []library.Song {
	switch kind {
	case Favorites:
		return in.Catalog.Resolve(in.Favorites)
	case TopTracks:
		return TopTracksOf(in.Stats.PlayHistory, in.Catalog)
	case Recent:
		return RecentOf(in.Stats.PlayHistory, in.Catalog)
	case Recommendations:
		return RecommendationsOf(in.Stats.PlayHistory, in.Catalog)
	}
	return nil
}
