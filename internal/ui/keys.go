package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

const transportHelp = "space pause  n/p track  ←/→ seek  +/- volume  s shuffle  r repeat  f fav  m mini"

func helpText(v view, inPlaylist bool) string {
	s := "tab view  " + transportHelp
	switch v {
	case viewDashboard:
		s += "  w window"
	case viewLibrary:
		s += "  enter play  / filter  a add to playlist  R rescan"
	case viewPlaylists:
		if inPlaylist {
			s += "  enter play  esc back"
		} else {
			s += "  enter open  c create  x delete"
		}
	}
	return s + "  q quit"
}

const miniHelp = "space pause  n/p track  m expand  q quit"
