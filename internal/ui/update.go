package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/playlist"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case modeCreatePlaylist:
		return m.updateCreate(msg)
	case modeAddToPlaylist:
		return m.updatePicker(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	if m.filtering() {
		return m.updateFocusedList(msg)
	}

	if handled, cmd := m.handleTransport(msg.String()); handled {
		return m, cmd
	}
	if m.mini {
		if isQuit(msg) {
			return m.quit()
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "tab":
		return m.switchView((m.view + 1) % viewCount)
	case "shift+tab":
		return m.switchView((m.view + viewCount - 1) % viewCount)
	case "1", "2", "3", "4":
		return m.switchView(view(msg.String()[0] - '1'))
	case "R":
		var cmd tea.Cmd
		m, cmd = m.startScan()
		return m, cmd
	}

	switch m.view {
	case viewDashboard:
		if msg.String() == "w" {
			m.window = nextWindow(m.window)
		}
		return m, nil
	case viewLibrary:
		return m.libraryKey(msg)
	case viewPlaylists:
		return m.playlistsKey(msg)
	}
	return m, nil
}

// handleTransport applies the keys that work in every view.
func (m *Model) handleTransport(key string) (bool, tea.Cmd) {
	c := m.deps.Controller
	switch key {
	case " ":
		c.TogglePlay()
	case "n":
		c.Next(false)
	case "p":
		c.Prev()
	case "left":
		c.Seek(max(m.status.Elapsed-seekStep, 0))
	case "right":
		c.Seek(m.status.Elapsed + seekStep)
	case "+", "=":
		c.SetVolume(min(m.status.Volume+volumeStep, 1))
	case "-":
		c.SetVolume(max(m.status.Volume-volumeStep, 0))
	case "s":
		if c.ToggleShuffle() {
			m.setNotice("Shuffle on")
		} else {
			m.setNotice("Shuffle off")
		}
	case "r":
		m.setNotice("Repeat " + c.CycleRepeat().String())
	case "f":
		m.toggleFavorite()
	case "m":
		m.toggleMini()
	default:
		return false, nil
	}
	m.status = c.Status()
	return true, nil
}

func (m *Model) toggleFavorite() {
	if !m.status.Loaded || m.deps.Favorites == nil {
		return
	}
	on, err := m.deps.Favorites.Toggle(m.status.Song.Path)
	if err != nil {
		m.deps.Logger.Error("saving favorites failed", "error", err)
		m.setNotice("Could not save favorites")
		return
	}
	if on {
		m.setNotice("Added to Favorites")
	} else {
		m.setNotice("Removed from Favorites")
	}
	m.refreshLibrary()
	m.refreshPlaylists()
}

func (m *Model) toggleMini() {
	w, h := platform.MiniWidth, platform.MiniHeight
	if m.mini {
		w, h = platform.FullWidth, platform.FullHeight
	}
	if m.deps.Window != nil {
		if err := m.deps.Window.Resize(w, h); err != nil {
			m.deps.Logger.Error("resize failed", "error", err)
			return
		}
	}
	m.mini = !m.mini
}

func (m Model) switchView(v view) (tea.Model, tea.Cmd) {
	if v < 0 || v >= viewCount {
		return m, nil
	}
	m.view = v
	if v == viewPlaylists {
		m.refreshPlaylists()
	}
	if v == viewLyrics {
		return m, m.fetchLyrics()
	}
	return m, nil
}

func (m Model) libraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		item, ok := m.library.SelectedItem().(songItem)
		if !ok {
			return m, nil
		}
		// A filtered library plays within the filter results.
		songs := visibleSongs(m.library)
		if m.library.FilterState() == list.Unfiltered {
			songs = nil
		}
		m.deps.Controller.PlaySong(item.song, songs)
		m.status = m.deps.Controller.Status()
		return m, nil
	case "a":
		if _, ok := m.library.SelectedItem().(songItem); !ok {
			return m, nil
		}
		if len(m.picker.Items()) == 0 {
			m.setNotice("Create a playlist first (c in Playlists)")
			return m, nil
		}
		m.mode = modeAddToPlaylist
		return m, nil
	}
	return m.updateFocusedList(msg)
}

func (m Model) playlistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.openList != nil {
		switch msg.String() {
		case "esc", "backspace":
			m.openList = nil
			return m, nil
		case "enter":
			item, ok := m.tracks.SelectedItem().(songItem)
			if ok {
				m.deps.Controller.PlaySong(item.song, m.openList.songs)
				m.status = m.deps.Controller.Status()
			}
			return m, nil
		}
		return m.updateFocusedList(msg)
	}

	switch msg.String() {
	case "enter":
		if pi, ok := m.playlists.SelectedItem().(playlistItem); ok {
			m.openPlaylist(pi)
		}
		return m, nil
	case "c":
		m.mode = modeCreatePlaylist
		m.input.Reset()
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	case "x":
		pi, ok := m.playlists.SelectedItem().(playlistItem)
		if !ok {
			return m, nil
		}
		u, ok := pi.pl.(playlist.User)
		if !ok {
			m.setNotice("Smart playlists cannot be deleted")
			return m, nil
		}
		m.pending = u
		m.mode = modeConfirmDelete
		return m, nil
	}
	return m.updateFocusedList(msg)
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.mode = modeNormal
		m.input.Blur()
		u, err := m.deps.Playlists.Create(name)
		if err != nil {
			m.deps.Logger.Error("creating playlist failed", "error", err)
			m.setNotice("Could not create playlist")
			return m, nil
		}
		m.setNotice(fmt.Sprintf("Created %q", u.Name))
		m.refreshPlaylists()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeNormal
		return m, nil
	case "enter":
		m.mode = modeNormal
		target, ok := m.picker.SelectedItem().(playlistItem)
		song, ok2 := m.library.SelectedItem().(songItem)
		if !ok || !ok2 {
			return m, nil
		}
		added, err := m.deps.Playlists.AddSongs(target.pl.Key(), song.song)
		if err != nil {
			m.deps.Logger.Error("adding to playlist failed", "error", err)
			m.setNotice("Could not add to playlist")
			return m, nil
		}
		if added == 0 {
			m.setNotice(fmt.Sprintf("Already in %s", target.pl.Title()))
		} else {
			m.setNotice(fmt.Sprintf("Added to %s", target.pl.Title()))
		}
		m.refreshPlaylists()
		return m, nil
	}
	return m.updateFocusedList(msg)
}

// updateConfirm handles the inline y/n prompt for deleting a playlist. The
// answer is handed to the store as a fixed platform.Answer.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var yes bool
	switch strings.ToLower(msg.String()) {
	case "y":
		yes = true
	case "n", "esc":
	default:
		return m, nil
	}
	m.mode = modeNormal
	deleted, err := m.deps.Playlists.Delete(m.ctx, m.pending.ID, platform.Answer{Yes: yes})
	if err != nil {
		m.deps.Logger.Error("deleting playlist failed", "error", err)
		m.setNotice("Could not delete playlist")
		return m, nil
	}
	if deleted {
		m.setNotice(fmt.Sprintf("Deleted %q", m.pending.Name))
		m.refreshPlaylists()
	}
	m.pending = playlist.User{}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.deps.Controller.Stop()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}
