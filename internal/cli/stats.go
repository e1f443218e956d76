package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/olivier-w/crossroads/internal/smart"
	"github.com/olivier-w/crossroads/internal/util"
)

func newStatsCmd(g *globals) *cobra.Command {
	var (
		window  string
		history int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show listening statistics",
		Long: `Show the listening dashboard for a time window: plays, distinct
tracks, lifetime hours and the most played songs.

Windows: today, 7d, 28d, 90d, 1y, lifetime.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := smart.ParseWindow(window)
			if err != nil {
				return err
			}
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.scan(cmd.Context()); err != nil {
				return err
			}

			now := time.Now()
			d := smart.BuildDashboard(a.smartInput(), w, now)
			out := cmd.OutOrStdout()
			if g.jsonOut {
				top := make([]map[string]any, len(d.TopSongs))
				for i, r := range d.TopSongs {
					top[i] = map[string]any{"path": r.Path, "title": r.Title, "artist": r.Artist, "count": r.Count}
				}
				return printJSON(out, map[string]any{
					"window":        string(d.Window),
					"plays":         d.Plays,
					"unique_tracks": d.UniqueTracks,
					"total_hours":   d.TotalHours(),
					"top_songs":     top,
				})
			}

			fmt.Fprintf(out, "%s: %s plays, %s tracks, %s listened\n", d.Window.Label(),
				humanize.Comma(int64(d.Plays)), humanize.Comma(int64(d.UniqueTracks)), util.FormatHours(int64(d.Listening.Seconds())))
			t := newTable(out, "#", "Title", "Artist", "Plays")
			for i, r := range d.TopSongs {
				t.AppendRow(table.Row{i + 1, r.Title, r.Artist, r.Count})
			}
			t.Render()

			if history > 0 {
				h := a.recorder.Stats().PlayHistory
				ht := newTable(out, "Played", "Song")
				for i := len(h) - 1; i >= 0 && i >= len(h)-history; i-- {
					name := h[i].Path
					if song, ok := a.catalog.Lookup(h[i].Path); ok {
						name = song.DisplayName()
					}
					ht.AppendRow(table.Row{humanize.RelTime(h[i].Timestamp, now, "ago", "from now"), name})
				}
				ht.Render()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", string(smart.Lifetime), "time window")
	cmd.Flags().IntVar(&history, "history", 0, "also list the last N plays")
	return cmd
}
