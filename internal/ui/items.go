package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/playlist"
	"github.com/olivier-w/crossroads/internal/util"
)

type songItem struct {
	song library.Song
	fav  bool
}

func (i songItem) Title() string {
	if i.fav {
		return "♥ " + i.song.Title
	}
	return i.song.Title
}

func (i songItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.song.Artist, i.song.Album, util.FormatSeconds(i.song.Duration))
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist }

type playlistItem struct {
	pl    playlist.Playlist
	songs []library.Song
}

func (i playlistItem) Title() string { return i.pl.Title() }

func (i playlistItem) Description() string {
	kind := "playlist"
	if _, ok := i.pl.(playlist.Smart); ok {
		kind = "smart"
	}
	return fmt.Sprintf("%s · %d songs · %s", kind, len(i.songs), util.FormatDuration(library.TotalDuration(i.songs)))
}

func (i playlistItem) FilterValue() string { return i.pl.Title() }

func newList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#D35400", Dark: "#FF8C00"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#D35400", Dark: "#FF8C00"})

	l := list.New(items, delegate, 80, 20)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = headerStyle
	return l
}

func songItems(songs []library.Song, favs *playlist.Favorites) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s, fav: favs != nil && favs.Contains(s.Path)}
	}
	return items
}

// visibleSongs returns the songs the list currently shows, honouring any
// active filter.
func visibleSongs(l list.Model) []library.Song {
	var out []library.Song
	for _, it := range l.VisibleItems() {
		if si, ok := it.(songItem); ok {
			out = append(out, si.song)
		}
	}
	return out
}
