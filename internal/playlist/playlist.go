package playlist

import (
	"github.com/olivier-w/crossroads/internal/smart"
)

// Playlist is either a User playlist or a Smart one.
type Playlist interface {
	Key() string
	Title() string
	isPlaylist()
}

// User is a named, ordered list of song paths with no duplicates.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Songs []string `json:"songs"`
}

// Key returns the playlist id.
func (u User) Key() string { return u.ID }

// Title returns the playlist name.
func (u User) Title() string { return u.Name }

func (User) isPlaylist() {}

// Contains reports whether path is in the playlist.
func (u User) Contains(path string) bool {
	for _, p := range u.Songs {
		if p == path {
			return true
		}
	}
	return false
}

func (u User) clone() User {
	u.Songs = append([]string(nil), u.Songs...)
	return u
}

// Smart is a computed playlist. It stores no songs.
type Smart struct {
	Kind smart.Kind
}

// Key returns the smart kind id.
func (s Smart) Key() string { return string(s.Kind) }

// Title returns the display name.
func (s Smart) Title() string { return s.Kind.Name() }

func (Smart) isPlaylist() {}

// Smarts returns the fixed smart playlists in display order.
func Smarts() []Smart {
	kinds := smart.Kinds()
	out := make([]Smart, len(kinds))
	for i, k := range kinds {
		out[i] = Smart{Kind: k}
	}
	return out
}
