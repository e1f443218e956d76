package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/lyrics"
	"github.com/olivier-w/crossroads/internal/util"
)

func newLyricsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lyrics <file>",
		Short: "Look up lyrics for a song",
		Long:  `Look up lyrics for an audio file by its artist, title, album and length.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song, err := library.ReadSong(args[0])
			if err != nil {
				return err
			}
			client := lyrics.NewClient(g.cfg.Lyrics.Endpoint, time.Duration(g.cfg.Lyrics.Timeout)*time.Second)
			res, err := client.Fetch(cmd.Context(), lyrics.Query{
				Artist:   song.Artist,
				Title:    song.Title,
				Album:    song.Album,
				Duration: song.Duration,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.jsonOut {
				return printJSON(out, map[string]any{
					"instrumental": res.Instrumental,
					"plain":        res.Plain,
					"synced":       res.Synced,
				})
			}
			fmt.Fprintf(out, "%s\n\n", song.DisplayName())
			switch {
			case res.Instrumental:
				fmt.Fprintln(out, "Instrumental")
			case len(res.Synced) > 0:
				for _, l := range res.Synced {
					fmt.Fprintf(out, "[%s] %s\n", util.FormatSeconds(l.Time), l.Text)
				}
			default:
				fmt.Fprintln(out, res.Plain)
			}
			return nil
		},
	}
}
