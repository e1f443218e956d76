package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/util"
)

func newScanCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [folder]",
		Short: "Scan the music folder",
		Long: `Scan the music folder and summarize the library.

Passing a folder makes it the music folder for future runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 1 {
				folder, err := platform.ResolveFolder(args[0])
				if err != nil {
					return err
				}
				if err := a.setFolder(folder); err != nil {
					return err
				}
			}
			if err := a.scan(cmd.Context()); err != nil {
				return err
			}

			songs := a.catalog.Songs()
			albums := library.Albums(songs)
			total := library.TotalDuration(songs)
			out := cmd.OutOrStdout()
			if g.jsonOut {
				return printJSON(out, map[string]any{
					"folder":           a.folder(),
					"songs":            len(songs),
					"albums":           len(albums),
					"duration_seconds": int64(total.Seconds()),
				})
			}
			fmt.Fprintf(out, "%s: %s songs in %s albums, %s\n",
				a.folder(), humanize.Comma(int64(len(songs))), humanize.Comma(int64(len(albums))), util.FormatDuration(total))
			if g.verbose {
				return g.writeSongs(out, songs)
			}
			return nil
		},
	}
}
