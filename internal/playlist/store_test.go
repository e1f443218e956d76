package playlist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/storage"
)

func newTestStore() (*Store, *storage.Memory) {
	mem := storage.NewMemory()
	s := NewStore(mem, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return s, mem
}

func TestCreateTrimsAndRejectsBlank(t *testing.T) {
	s, _ := newTestStore()
	if _, err := s.Create("   "); !errors.Is(err, apperrors.ErrEmptyName) {
		t.Fatalf("Create(blank) error = %v, want ErrEmptyName", err)
	}
	if len(s.List()) != 0 {
		t.Fatal("blank create added a playlist")
	}

	pl, err := s.Create("  Road Trip ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if pl.Name != "Road Trip" || pl.ID != "pl-1700000000000" || len(pl.Songs) != 0 {
		t.Fatalf("Create() = %+v", pl)
	}
}

func TestCreateSameMillisecondGetsDistinctIDs(t *testing.T) {
	s, _ := newTestStore()
	a, _ := s.Create("A")
	b, _ := s.Create("B")
	if a.ID == b.ID {
		t.Fatalf("duplicate id %s", a.ID)
	}
}

func TestAddSongsDeduplicatesInOrder(t *testing.T) {
	s, mem := newTestStore()
	pl, _ := s.Create("Mix")
	a := library.Song{Path: "/m/a.flac"}
	b := library.Song{Path: "/m/b.flac"}

	n, err := s.AddSongs(pl.ID, a, a)
	if err != nil || n != 1 {
		t.Fatalf("AddSongs(a, a) = %d, %v", n, err)
	}
	n, _ = s.AddSongs(pl.ID, b, a)
	if n != 1 {
		t.Fatalf("AddSongs(b, a) added %d, want 1", n)
	}

	got, _ := s.Get(pl.ID)
	if !slices.Equal(got.Songs, []string{a.Path, b.Path}) {
		t.Fatalf("Songs = %v", got.Songs)
	}

	var saved []User
	mem.Get(storage.KeyPlaylists, &saved)
	if len(saved) != 1 || len(saved[0].Songs) != 2 {
		t.Fatalf("persisted = %+v", saved)
	}
}

func TestAddSongsUnknownPlaylistIsNoop(t *testing.T) {
	s, _ := newTestStore()
	s.Create("Mix")
	before := s.List()
	_, err := s.AddSongs("pl-missing", library.Song{Path: "/x"})
	if !errors.Is(err, apperrors.ErrPlaylistNotFound) {
		t.Fatalf("error = %v, want ErrPlaylistNotFound", err)
	}
	if after := s.List(); len(after[0].Songs) != len(before[0].Songs) {
		t.Fatal("unknown id modified a playlist")
	}
}

func TestAddZeroSongs(t *testing.T) {
	s, _ := newTestStore()
	pl, _ := s.Create("Mix")
	if n, err := s.AddSongs(pl.ID); n != 0 || err != nil {
		t.Fatalf("AddSongs() = %d, %v", n, err)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s, _ := newTestStore()
	pl, _ := s.Create("Mix")

	removed, err := s.Delete(context.Background(), pl.ID, platform.Answer{Yes: false})
	if err != nil || removed {
		t.Fatalf("declined Delete() = %v, %v", removed, err)
	}
	if _, ok := s.Get(pl.ID); !ok {
		t.Fatal("playlist removed without confirmation")
	}

	removed, err = s.Delete(context.Background(), pl.ID, platform.Answer{Yes: true})
	if err != nil || !removed {
		t.Fatalf("confirmed Delete() = %v, %v", removed, err)
	}
	if _, ok := s.Get(pl.ID); ok {
		t.Fatal("playlist still present")
	}
}

func TestResolveDropsMissingSongs(t *testing.T) {
	s, _ := newTestStore()
	pl, _ := s.Create("Mix")
	s.AddSongs(pl.ID, library.Song{Path: "/m/gone.mp3"}, library.Song{Path: "/m/a.mp3"})

	cat := library.NewCatalog([]library.Song{{Path: "/m/a.mp3", Title: "A"}})
	songs, err := s.Resolve(pl.ID, cat)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "A" {
		t.Fatalf("Resolve() = %+v", songs)
	}
	if _, err := s.Resolve("nope", cat); !errors.Is(err, apperrors.ErrPlaylistNotFound) {
		t.Fatalf("Resolve(unknown) error = %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	s, mem := newTestStore()
	pl, _ := s.Create("Mix")
	s.AddSongs(pl.ID, library.Song{Path: "/m/a.mp3"})

	other := NewStore(mem, nil)
	if err := other.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, ok := other.Get(pl.ID)
	if !ok || got.Name != "Mix" || len(got.Songs) != 1 {
		t.Fatalf("loaded = %+v, %v", got, ok)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s, _ := newTestStore()
	pl, _ := s.Create("Mix")
	s.AddSongs(pl.ID, library.Song{Path: "/a"})
	s.List()[0].Songs[0] = "/changed"
	if got, _ := s.Get(pl.ID); got.Songs[0] != "/a" {
		t.Fatal("List() shares memory with the store")
	}
}

func TestFavoritesToggle(t *testing.T) {
	mem := storage.NewMemory()
	f := NewFavorites(mem, nil)

	if fav, _ := f.Toggle("/a"); !fav {
		t.Fatal("expected /a to become a favorite")
	}
	f.Toggle("/b")
	if fav, _ := f.Toggle("/a"); fav {
		t.Fatal("expected /a to be removed")
	}
	if f.Contains("/a") || !f.Contains("/b") {
		t.Fatalf("Paths() = %v", f.Paths())
	}
	if fav, err := f.Toggle(""); fav || err != nil {
		t.Fatal("empty path should be ignored")
	}

	reloaded := NewFavorites(mem, nil)
	reloaded.Load()
	if !slices.Equal(reloaded.Paths(), []string{"/b"}) {
		t.Fatalf("reloaded = %v", reloaded.Paths())
	}
}

func TestSmartsAndVariant(t *testing.T) {
	var lists []Playlist
	for _, sp := range Smarts() {
		lists = append(lists, sp)
	}
	lists = append(lists, User{ID: "pl-1", Name: "Mine"})

	want := []string{"Favorites", "Top Tracks", "Recently Played", "Discovery", "Mine"}
	for i, pl := range lists {
		if pl.Title() != want[i] {
			t.Fatalf("Title() = %q, want %q", pl.Title(), want[i])
		}
	}
	if lists[2].Key() != "recent" {
		t.Fatalf("Key() = %q", lists[2].Key())
	}
}
