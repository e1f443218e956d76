package cli

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/util"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

// songJSON is the --json shape of a song; cover art is left out.
type songJSON struct {
	Path     string  `json:"path"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
}

func songsJSON(songs []library.Song) []songJSON {
	out := make([]songJSON, len(songs))
	for i, s := range songs {
		out[i] = songJSON{Path: s.Path, Title: s.Title, Artist: s.Artist, Album: s.Album, Duration: s.Duration}
	}
	return out
}

// writeSongs prints songs as JSON or as a numbered table.
func (g *globals) writeSongs(w io.Writer, songs []library.Song) error {
	if g.jsonOut {
		return printJSON(w, songsJSON(songs))
	}
	t := newTable(w, "#", "Title", "Artist", "Album", "Length")
	for i, s := range songs {
		t.AppendRow(table.Row{i + 1, s.Title, s.Artist, s.Album, util.FormatSeconds(s.Duration)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", util.FormatDuration(library.TotalDuration(songs))})
	t.Render()
	return nil
}
