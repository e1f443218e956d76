// Package ui is the crossroads terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/lyrics"
	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/playback"
	"github.com/olivier-w/crossroads/internal/playlist"
	"github.com/olivier-w/crossroads/internal/smart"
	"github.com/olivier-w/crossroads/internal/stats"
)

type view int

const (
	viewDashboard view = iota
	viewLibrary
	viewPlaylists
	viewLyrics
	viewCount
)

func (v view) String() string {
	switch v {
	case viewLibrary:
		return "Library"
	case viewPlaylists:
		return "Playlists"
	case viewLyrics:
		return "Lyrics"
	}
	return "Dashboard"
}

// parseView maps a config start_view name to a view index.
func parseView(s string) view {
	if s == "library" {
		return viewLibrary
	}
	return viewDashboard
}

type inputMode int

const (
	modeNormal inputMode = iota
	modeCreatePlaylist
	modeAddToPlaylist
	modeConfirmDelete
)

const (
	seekStep   = 5.0
	volumeStep = 0.05
	noticeTTL  = 4 * time.Second
)

// Deps are the collaborators the TUI drives. Watcher, Lyrics and Window
// may be nil.
type Deps struct {
	Controller *playback.Controller
	Catalog    *library.Catalog
	Scanner    *library.Scanner
	Watcher    *library.Watcher
	Folder     string
	Recorder   *stats.Recorder
	Playlists  *playlist.Store
	Favorites  *playlist.Favorites
	Lyrics     *lyrics.Client
	Window     platform.Window
	Logger     *slog.Logger
	Refresh    time.Duration
	StartView  string
	Now        func() time.Time
}

// Model is the Bubbletea model for the crossroads TUI.
type Model struct {
	ctx  context.Context
	deps Deps

	view     view
	mode     inputMode
	width    int
	height   int
	mini     bool
	quitting bool

	status   playback.Status
	lastPath string
	window   smart.Window

	library   list.Model
	playlists list.Model
	tracks    list.Model
	picker    list.Model
	openList  *playlistItem
	pending   playlist.User
	input     textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	scanning  bool
	lyrics    lyricsPane

	notice     string
	noticeTime time.Time
}

// New creates the TUI model. The catalog should already be populated.
func New(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Refresh <= 0 {
		deps.Refresh = 250 * time.Millisecond
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	ti := textinput.New()
	ti.Placeholder = "Playlist name"
	ti.CharLimit = 120
	ti.Width = 40

	m := Model{
		ctx:      ctx,
		deps:     deps,
		view:     parseView(deps.StartView),
		window:   smart.Week,
		library:  newList("Library", nil),
		tracks:   newList("", nil),
		picker:   newList("Add to playlist", nil),
		input:    ti,
		spinner:  s,
		progress: progress.New(progress.WithScaledGradient("#FF8C00", "#FF5F1F"), progress.WithoutPercentage()),
		lyrics:   newLyricsPane(int(time.Second / deps.Refresh)),
	}
	m.picker.SetFilteringEnabled(false)
	m.playlists = newList("Playlists", nil)
	m.refreshLibrary()
	m.refreshPlaylists()
	m.status = deps.Controller.Status()
	return m
}

// Run starts the TUI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.deps.Refresh),
		watchCmd(m.ctx, m.deps.Watcher),
		m.spinner.Tick,
		tea.SetWindowTitle("crossroads"),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.handleTick()

	case folderChangedMsg:
		m.deps.Logger.Info("music folder changed, rescanning", "folder", m.deps.Folder)
		var cmd tea.Cmd
		m, cmd = m.startScan()
		return m, tea.Batch(cmd, watchCmd(m.ctx, m.deps.Watcher))

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.deps.Logger.Error("rescan failed", "error", msg.err)
			m.setNotice("Rescan failed: " + msg.err.Error())
			return m, nil
		}
		m.deps.Catalog.Replace(msg.songs)
		m.refreshLibrary()
		m.refreshPlaylists()
		m.setNotice(fmt.Sprintf("Library updated: %d songs", len(msg.songs)))
		return m, nil

	case lyricsMsg:
		if m.lyrics.accept(msg) && msg.err != nil {
			m.deps.Logger.Debug("lyrics lookup failed", "path", msg.ticket.Path, "error", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocusedList(msg)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	listHeight := max(h-12, 5)
	for _, l := range []*list.Model{&m.library, &m.playlists, &m.tracks, &m.picker} {
		l.SetSize(w, listHeight)
	}
	m.progress.Width = min(max(w-20, 10), 80)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.deps.Refresh)}
	m.status = m.deps.Controller.Status()
	if m.status.Loaded && m.status.Song.Path != m.lastPath {
		m.lastPath = m.status.Song.Path
		cmds = append(cmds, tea.SetWindowTitle(windowTitle(m.status)))
		if m.view == viewLyrics {
			cmds = append(cmds, m.fetchLyrics())
		}
	}
	if m.view == viewLyrics {
		m.lyrics.step(m.status.Elapsed)
	}
	if m.notice != "" && m.deps.Now().Sub(m.noticeTime) > noticeTTL {
		m.notice = ""
	}
	return m, tea.Batch(cmds...)
}

// fetchLyrics starts a lookup for the loaded song unless one for the same
// song is already current.
func (m *Model) fetchLyrics() tea.Cmd {
	if m.deps.Lyrics == nil || !m.status.Loaded {
		return nil
	}
	song := m.status.Song
	if m.lyrics.tracker.Path() == song.Path {
		return nil
	}
	m.lyrics.reset()
	tk := m.lyrics.tracker.Begin(song.Path)
	return fetchLyricsCmd(m.ctx, m.deps.Lyrics, tk, song)
}

func (m Model) startScan() (Model, tea.Cmd) {
	if m.scanning || m.deps.Scanner == nil || m.deps.Folder == "" {
		return m, nil
	}
	m.scanning = true
	return m, scanCmd(m.ctx, m.deps.Scanner, m.deps.Folder)
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeTime = m.deps.Now()
}

func (m *Model) refreshLibrary() {
	m.library.SetItems(songItems(m.deps.Catalog.Songs(), m.deps.Favorites))
}

func (m *Model) smartInput() smart.Input {
	in := smart.Input{Catalog: m.deps.Catalog}
	if m.deps.Recorder != nil {
		in.Stats = m.deps.Recorder.Stats()
	}
	if m.deps.Favorites != nil {
		in.Favorites = m.deps.Favorites.Paths()
	}
	return in
}

// refreshPlaylists rebuilds the playlist index, and the open playlist's
// tracks if one is open.
func (m *Model) refreshPlaylists() {
	var items, targets []list.Item
	for _, u := range m.deps.Playlists.List() {
		songs, _ := m.deps.Playlists.Resolve(u.ID, m.deps.Catalog)
		it := playlistItem{pl: u, songs: songs}
		items = append(items, it)
		targets = append(targets, it)
	}
	in := m.smartInput()
	for _, s := range playlist.Smarts() {
		items = append(items, playlistItem{pl: s, songs: smart.Evaluate(s.Kind, in)})
	}
	m.playlists.SetItems(items)
	m.picker.SetItems(targets)

	if m.openList == nil {
		return
	}
	for _, it := range items {
		pi := it.(playlistItem)
		if pi.pl.Key() == m.openList.pl.Key() {
			m.openPlaylist(pi)
			return
		}
	}
	m.openList = nil
}

func (m *Model) openPlaylist(pi playlistItem) {
	m.openList = &pi
	m.tracks.Title = pi.pl.Title()
	m.tracks.SetItems(songItems(pi.songs, m.deps.Favorites))
}

func (m Model) updateFocusedList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.mode == modeAddToPlaylist:
		m.picker, cmd = m.picker.Update(msg)
	case m.view == viewLibrary:
		m.library, cmd = m.library.Update(msg)
	case m.view == viewPlaylists && m.openList != nil:
		m.tracks, cmd = m.tracks.Update(msg)
	case m.view == viewPlaylists:
		m.playlists, cmd = m.playlists.Update(msg)
	}
	return m, cmd
}

// filtering reports whether the focused list is taking filter input.
func (m Model) filtering() bool {
	switch m.view {
	case viewLibrary:
		return m.library.FilterState() == list.Filtering
	case viewPlaylists:
		if m.openList != nil {
			return m.tracks.FilterState() == list.Filtering
		}
		return m.playlists.FilterState() == list.Filtering
	}
	return false
}

func windowTitle(st playback.Status) string {
	icon, _ := stateIcon(st.State)
	return icon + " " + st.Song.DisplayName() + " · crossroads"
}
