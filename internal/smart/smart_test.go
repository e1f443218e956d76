package smart

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/stats"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func hist(paths ...string) []stats.Entry {
	out := make([]stats.Entry, len(paths))
	for i, p := range paths {
		out[i] = stats.Entry{Path: p, Timestamp: base.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func songPaths(songs []library.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Path
	}
	return out
}

func catalogOf(songs ...library.Song) *library.Catalog {
	return library.NewCatalog(songs)
}

func TestTopTracksAndRecentOnSampleHistory(t *testing.T) {
	cat := catalogOf(
		library.Song{Path: "a", Artist: "X"},
		library.Song{Path: "b", Artist: "Y"},
	)
	h := hist("a", "b", "a")

	if got := songPaths(TopTracksOf(h, cat)); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("TopTracksOf() = %v, want [a b]", got)
	}
	if got := songPaths(RecentOf(h, cat)); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("RecentOf() = %v, want [a b]", got)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	cat := catalogOf(library.Song{Path: "a"}, library.Song{Path: "b"}, library.Song{Path: "c"})
	got := songPaths(RecentOf(hist("a", "b", "c", "b"), cat))
	if !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Fatalf("RecentOf() = %v, want [b c a]", got)
	}
}

func TestTopTracksTieKeepsFirstEncounter(t *testing.T) {
	cat := catalogOf(library.Song{Path: "a"}, library.Song{Path: "b"}, library.Song{Path: "c"})
	got := songPaths(TopTracksOf(hist("c", "a", "b", "a", "b"), cat))
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("TopTracksOf() = %v, want [a b c]", got)
	}
}

func TestUnresolvedPathsDropped(t *testing.T) {
	cat := catalogOf(library.Song{Path: "a"})
	h := hist("gone", "a", "gone")

	if got := songPaths(TopTracksOf(h, cat)); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("TopTracksOf() = %v", got)
	}
	if got := songPaths(RecentOf(h, cat)); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("RecentOf() = %v", got)
	}
	fav := Evaluate(Favorites, Input{Favorites: []string{"gone", "a"}, Catalog: cat})
	if got := songPaths(fav); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("favorites = %v", got)
	}
}

func TestRecentCapsAtLimit(t *testing.T) {
	var songs []library.Song
	var paths []string
	for i := 0; i < 40; i++ {
		p := fmt.Sprintf("s%02d", i)
		songs = append(songs, library.Song{Path: p})
		paths = append(paths, p)
	}
	got := RecentOf(hist(paths...), catalogOf(songs...))
	if len(got) != Limit || got[0].Path != "s39" {
		t.Fatalf("RecentOf() len %d head %s", len(got), got[0].Path)
	}
}

func TestRecommendationsEmptyWhenAllRecentlyHeard(t *testing.T) {
	cat := catalogOf(
		library.Song{Path: "x1", Artist: "X"},
		library.Song{Path: "x2", Artist: "X"},
		library.Song{Path: "y1", Artist: "Y"},
	)
	got := RecommendationsOf(hist("x1", "x2", "x1"), cat)
	if len(got) != 0 {
		t.Fatalf("RecommendationsOf() = %v, want empty", songPaths(got))
	}
}

func TestRecommendationsPicksUnheardSongsByTopArtist(t *testing.T) {
	cat := catalogOf(
		library.Song{Path: "x1", Artist: "X"},
		library.Song{Path: "y1", Artist: "Y"},
		library.Song{Path: "x2", Artist: "X"},
		library.Song{Path: "x3", Artist: "X"},
	)
	got := songPaths(RecommendationsOf(hist("y1", "x1", "x1"), cat))
	if !slices.Equal(got, []string{"x2", "x3"}) {
		t.Fatalf("RecommendationsOf() = %v, want [x2 x3]", got)
	}
}

func TestRecommendationsOnlyExcludeLastFifty(t *testing.T) {
	cat := catalogOf(
		library.Song{Path: "x1", Artist: "X"},
		library.Song{Path: "x2", Artist: "X"},
	)
	paths := []string{"x1"}
	for i := 0; i < RecentWindow; i++ {
		paths = append(paths, "x2")
	}
	got := songPaths(RecommendationsOf(hist(paths...), cat))
	if !slices.Equal(got, []string{"x1"}) {
		t.Fatalf("RecommendationsOf() = %v, want [x1]", got)
	}
}

func TestRecommendationsNoHistory(t *testing.T) {
	cat := catalogOf(library.Song{Path: "x1", Artist: "X"})
	if got := Evaluate(Recommendations, Input{Catalog: cat}); len(got) != 0 {
		t.Fatalf("Evaluate() = %v, want empty", got)
	}
}

func TestTopArtistTieGoesToFirstEncountered(t *testing.T) {
	cat := catalogOf(
		library.Song{Path: "y1", Artist: "Y"},
		library.Song{Path: "x1", Artist: "X"},
	)
	artist, ok := TopArtist(hist("y1", "x1", "x1", "y1"), cat)
	if !ok || artist != "Y" {
		t.Fatalf("TopArtist() = %q, %v; want Y", artist, ok)
	}
}

func TestTopSongsWindow(t *testing.T) {
	cat := catalogOf(library.Song{Path: "old"}, library.Song{Path: "new"})
	now := base.Add(30 * day)
	h := []stats.Entry{
		{Path: "old", Timestamp: base},
		{Path: "old", Timestamp: base},
		{Path: "new", Timestamp: now.Add(-time.Hour)},
	}

	got := TopSongs(h, cat, Week, now, TopSongsLimit)
	if len(got) != 1 || got[0].Path != "new" || got[0].Count != 1 {
		t.Fatalf("TopSongs(7d) = %+v", got)
	}
	got = TopSongs(h, cat, Lifetime, now, TopSongsLimit)
	if len(got) != 2 || got[0].Path != "old" || got[0].Count != 2 {
		t.Fatalf("TopSongs(lifetime) = %+v", got)
	}
}

func TestWindowBoundaryIsExclusive(t *testing.T) {
	now := base.Add(day)
	h := []stats.Entry{{Path: "a", Timestamp: base}}
	if got := Today.Filter(h, now); len(got) != 0 {
		t.Fatal("entry exactly one day old should be outside today")
	}
	if got := Today.Filter(h, now.Add(-time.Millisecond)); len(got) != 1 {
		t.Fatal("entry just under one day old should be inside today")
	}
}

func TestBuildDashboard(t *testing.T) {
	cat := catalogOf(library.Song{Path: "a"}, library.Song{Path: "b"})
	in := Input{
		Stats:   stats.Stats{TotalTime: 5400, PlayHistory: hist("a", "b", "a", "gone")},
		Catalog: cat,
	}
	d := BuildDashboard(in, Lifetime, base.Add(time.Hour))
	if d.Plays != 4 || d.UniqueTracks != 3 {
		t.Fatalf("Plays %d UniqueTracks %d", d.Plays, d.UniqueTracks)
	}
	if d.TotalHours() != 1.5 {
		t.Fatalf("TotalHours() = %v", d.TotalHours())
	}
	if len(d.TopSongs) != 2 || d.TopSongs[0].Path != "a" {
		t.Fatalf("TopSongs = %+v", d.TopSongs)
	}
}

func TestParseKindAndWindow(t *testing.T) {
	if k, err := ParseKind("recent"); err != nil || k != Recent {
		t.Fatalf("ParseKind(recent) = %v, %v", k, err)
	}
	if _, err := ParseKind("mixtape"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if w, err := ParseWindow(""); err != nil || w != Lifetime {
		t.Fatalf("ParseWindow(\"\") = %v, %v", w, err)
	}
	if Recommendations.Name() != "Discovery" {
		t.Fatalf("Name() = %q", Recommendations.Name())
	}
}
