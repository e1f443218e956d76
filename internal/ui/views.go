package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/olivier-w/crossroads/internal/smart"
	"github.com/olivier-w/crossroads/internal/util"
)

func nextWindow(w smart.Window) smart.Window {
	ws := smart.Windows()
	for i, x := range ws {
		if x == w {
			return ws[(i+1)%len(ws)]
		}
	}
	return smart.Lifetime
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mini {
		return m.miniView()
	}

	var b strings.Builder
	b.WriteString("\n  " + m.tabs() + "\n\n")
	switch m.mode {
	case modeCreatePlaylist:
		b.WriteString("  " + statusStyle.Render("New playlist:") + "\n")
		b.WriteString("  " + m.input.View() + "\n\n")
		b.WriteString("  " + helpStyle.Render("enter create  esc cancel") + "\n")
		return b.String()
	case modeAddToPlaylist:
		b.WriteString(m.picker.View() + "\n")
		b.WriteString("  " + helpStyle.Render("enter add  esc cancel") + "\n")
		return b.String()
	}

	switch m.view {
	case viewDashboard:
		b.WriteString(m.dashboardView())
	case viewLibrary:
		b.WriteString(m.library.View())
	case viewPlaylists:
		if m.openList != nil {
			b.WriteString(m.tracks.View())
		} else {
			b.WriteString(m.playlists.View())
		}
	case viewLyrics:
		b.WriteString(m.lyricsView())
	}
	b.WriteString("\n\n")
	b.WriteString(m.playerBar())
	return b.String()
}

func (m Model) tabs() string {
	parts := []string{accentStyle.Render("crossroads")}
	for v := range viewCount {
		label := fmt.Sprintf("%d %s", v+1, v)
		if v == m.view {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	if m.scanning {
		parts = append(parts, m.spinner.View()+statusStyle.Render(" scanning"))
	}
	return strings.Join(parts, " ")
}

func (m Model) dashboardView() string {
	in := m.smartInput()
	now := m.deps.Now()
	d := smart.BuildDashboard(in, m.window, now)

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Dashboard") + "  " + artistStyle.Render(d.Window.Label()) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		statusStyle.Render(util.FormatHours(int64(d.Listening/time.Second))+" listened"),
		statusStyle.Render(humanize.Comma(int64(d.Plays))+" plays"),
		statusStyle.Render(humanize.Comma(int64(d.UniqueTracks))+" tracks")))
	if h := in.Stats.PlayHistory; len(h) > 0 {
		b.WriteString("  " + helpStyle.Render("last played "+humanize.RelTime(h[len(h)-1].Timestamp, now, "ago", "from now")) + "\n")
	}
	b.WriteString("\n  " + headerStyle.Render("Top songs") + "\n")
	if len(d.TopSongs) == 0 {
		b.WriteString("  " + helpStyle.Render("Nothing played in this window yet.") + "\n")
	}
	nameWidth := max(m.width-20, 20)
	for i, r := range d.TopSongs {
		plays := "plays"
		if r.Count == 1 {
			plays = "play"
		}
		b.WriteString(fmt.Sprintf("  %2d. %s %s\n", i+1,
			util.PadRight(r.Song.DisplayName(), nameWidth),
			timeStyle.Render(fmt.Sprintf("%d %s", r.Count, plays))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) lyricsView() string {
	if !m.status.Loaded {
		return "  " + helpStyle.Render("Play something to see its lyrics.")
	}
	if m.deps.Lyrics == nil {
		return "  " + helpStyle.Render("Lyrics are disabled.")
	}
	head := "  " + titleStyle.Render(m.status.Song.Title) + "  " + artistStyle.Render(m.status.Song.Artist) + "\n\n"
	if m.lyrics.loading {
		return head + "  " + m.spinner.View() + " " + m.lyrics.view(m.width, 0)
	}
	return head + m.lyrics.view(m.width, max(m.height-14, 5))
}

// playerBar is the now-playing block shown under every full view.
func (m Model) playerBar() string {
	st := m.status
	w := m.width
	if w < 30 {
		w = 50
	}
	var lines []string
	if st.Loaded {
		title := titleStyle.Render(util.Truncate(st.Song.Title, w-4))
		if m.deps.Favorites != nil && m.deps.Favorites.Contains(st.Song.Path) {
			title += " " + accentStyle.Render("♥")
		}
		lines = append(lines, title)
		sub := st.Song.Artist
		if st.Song.Album != "" {
			sub += " - " + st.Song.Album
		}
		lines = append(lines, artistStyle.Render(util.Truncate(sub, w-4)))
	} else {
		lines = append(lines, helpStyle.Render("Nothing playing"))
	}

	elapsed := util.FormatSeconds(st.Elapsed)
	total := util.FormatSeconds(st.Duration)
	ratio := 0.0
	if st.Duration > 0 {
		ratio = min(max(st.Elapsed/st.Duration, 0), 1)
	}
	lines = append(lines, fmt.Sprintf("%s %s %s", timeStyle.Render(elapsed), m.progress.ViewAs(ratio), timeStyle.Render(total)))

	icon, text := stateIcon(st.State)
	left := icon + "  " + text
	if modes := modeIcons(st.Shuffle, st.Repeat); modes != "" {
		left += "  " + modes
	}
	if st.QueueLen > 0 {
		left += fmt.Sprintf("  %d/%d", st.Index+1, st.QueueLen)
	}
	vol := renderVolumePercent(st.Volume)
	gap := w - len([]rune(left)) - len(vol) - 4
	lines = append(lines, statusStyle.Render(left)+spaces(max(gap, 2))+statusStyle.Render(vol))

	if m.mode == modeConfirmDelete {
		lines = append(lines, accentStyle.Render(fmt.Sprintf("Delete playlist %q? y/n", m.pending.Name)))
	} else if m.notice != "" {
		lines = append(lines, helpStyle.Render(m.notice))
	}
	lines = append(lines, "", helpStyle.Render(util.Truncate(helpText(m.view, m.openList != nil), w-4)))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  " + l + "\n")
	}
	return b.String()
}

func (m Model) miniView() string {
	st := m.status
	w := 36
	var b strings.Builder
	b.WriteString("\n")
	if st.Loaded {
		b.WriteString("  " + titleStyle.Render(util.Truncate(st.Song.Title, w)) + "\n")
		b.WriteString("  " + artistStyle.Render(util.Truncate(st.Song.Artist, w)) + "\n")
	} else {
		b.WriteString("  " + helpStyle.Render("Nothing playing") + "\n\n")
	}
	b.WriteString("  " + renderProgressBar(st.Elapsed, st.Duration, w) + "\n")
	icon, _ := stateIcon(st.State)
	b.WriteString(fmt.Sprintf("  %s %s / %s  %s\n", icon,
		util.FormatSeconds(st.Elapsed), util.FormatSeconds(st.Duration), modeIcons(st.Shuffle, st.Repeat)))
	b.WriteString("\n  " + helpStyle.Render(miniHelp) + "\n")
	return b.String()
}
