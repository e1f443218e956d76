package library

import (
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Catalog is the set of songs produced by the most recent scan.
// It is replaced wholesale, never edited in place.
type Catalog struct {
	mu     sync.RWMutex
	songs  []Song
	byPath map[string]int
}

// NewCatalog creates a Catalog holding songs.
func NewCatalog(songs []Song) *Catalog {
	c := &Catalog{}
	c.Replace(songs)
	return c
}

// Replace swaps in a new song list.
func (c *Catalog) Replace(songs []Song) {
	byPath := lo.SliceToMap(lo.Range(len(songs)), func(i int) (string, int) {
		return songs[i].Path, i
	})
	c.mu.Lock()
	c.songs = songs
	c.byPath = byPath
	c.mu.Unlock()
}

// Songs returns the catalog in scan order. The slice must not be modified.
func (c *Catalog) Songs() []Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.songs
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.songs)
}

// Lookup resolves a path to its Song.
func (c *Catalog) Lookup(path string) (Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byPath[path]
	if !ok {
		return Song{}, false
	}
	return c.songs[i], true
}

// Resolve maps paths to songs, silently dropping paths no longer in the catalog.
func (c *Catalog) Resolve(paths []string) []Song {
	out := make([]Song, 0, len(paths))
	for _, p := range paths {
		if s, ok := c.Lookup(p); ok {
			out = append(out, s)
		}
	}
	return out
}

// Filter returns songs whose title or artist contains query, case-insensitively.
// An empty query returns every song.
func Filter(songs []Song, query string) []Song {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return songs
	}
	return lo.Filter(songs, func(s Song, _ int) bool {
		return strings.Contains(strings.ToLower(s.Title), q) ||
			strings.Contains(strings.ToLower(s.Artist), q)
	})
}

// Album groups songs sharing an album title.
type Album struct {
	Title   string
	Artist  string
	Picture *Picture
	Songs   []Song
}

// Albums groups songs by album title, keeping first-seen order.
func Albums(songs []Song) []Album {
	var albums []Album
	index := make(map[string]int)
	for _, s := range songs {
		i, ok := index[s.Album]
		if !ok {
			i = len(albums)
			index[s.Album] = i
			albums = append(albums, Album{Title: s.Album, Artist: s.Artist, Picture: s.Picture})
		}
		albums[i].Songs = append(albums[i].Songs, s)
	}
	return albums
}
