package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/lyrics"
)

type tickMsg time.Time

// scanDoneMsg carries a finished rescan of the music folder.
type scanDoneMsg struct {
	songs []library.Song
	err   error
}

// folderChangedMsg means the watcher saw changes under the music folder.
type folderChangedMsg struct{}

type lyricsMsg struct {
	ticket lyrics.Ticket
	result lyrics.Result
	err    error
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func scanCmd(ctx context.Context, s *library.Scanner, folder string) tea.Cmd {
	return func() tea.Msg {
		songs, err := s.Scan(ctx, folder)
		return scanDoneMsg{songs: songs, err: err}
	}
}

// watchCmd waits for the next change notification. It is re-armed after
// each folderChangedMsg.
func watchCmd(ctx context.Context, w *library.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Changes():
			return folderChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func fetchLyricsCmd(ctx context.Context, c *lyrics.Client, tk lyrics.Ticket, song library.Song) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Fetch(ctx, lyrics.Query{
			Artist:   song.Artist,
			Title:    song.Title,
			Album:    song.Album,
			Duration: song.Duration,
		})
		return lyricsMsg{ticket: tk, result: res, err: err}
	}
}
