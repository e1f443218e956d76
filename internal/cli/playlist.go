package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/platform"
	"github.com/olivier-w/crossroads/internal/playlist"
	"github.com/olivier-w/crossroads/internal/smart"
	"github.com/olivier-w/crossroads/internal/util"
)

func newPlaylistCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"pl"},
		Short:   "Manage playlists",
		Long:    `Create, fill, show and delete playlists.`,
	}
	cmd.AddCommand(
		newPlaylistListCmd(g),
		newPlaylistCreateCmd(g),
		newPlaylistAddCmd(g),
		newPlaylistShowCmd(g),
		newPlaylistDeleteCmd(g),
		newPlaylistImportCmd(g),
		newPlaylistExportCmd(g),
	)
	return cmd
}

func newPlaylistListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.scan(cmd.Context()); err != nil {
				return err
			}

			type row struct {
				ID       string  `json:"id"`
				Name     string  `json:"name"`
				Kind     string  `json:"kind"`
				Songs    int     `json:"songs"`
				Duration float64 `json:"duration"`
			}
			var rows []row
			for _, u := range a.playlists.List() {
				songs, _ := a.playlists.Resolve(u.ID, a.catalog)
				rows = append(rows, row{u.ID, u.Name, "user", len(songs), library.TotalDuration(songs).Seconds()})
			}
			in := a.smartInput()
			for _, s := range playlist.Smarts() {
				songs := smart.Evaluate(s.Kind, in)
				rows = append(rows, row{s.Key(), s.Title(), "smart", len(songs), library.TotalDuration(songs).Seconds()})
			}

			out := cmd.OutOrStdout()
			if g.jsonOut {
				return printJSON(out, rows)
			}
			t := newTable(out, "ID", "Name", "Kind", "Songs", "Length")
			for _, r := range rows {
				t.AppendRow(table.Row{r.ID, r.Name, r.Kind, r.Songs, util.FormatSeconds(r.Duration)})
			}
			t.Render()
			return nil
		},
	}
}

func newPlaylistCreateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()

			u, err := a.playlists.Create(args[0])
			if err != nil {
				return err
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", u.Name, u.ID)
			return nil
		},
	}
}

func newPlaylistAddCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <file>...",
		Short: "Add songs to a playlist",
		Long:  `Add audio files to a playlist. Songs already in the playlist are skipped.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()

			songs := make([]library.Song, 0, len(args)-1)
			for _, p := range args[1:] {
				abs, err := filepath.Abs(p)
				if err != nil {
					return err
				}
				song, err := library.ReadSong(abs)
				if err != nil {
					return fmt.Errorf("%s: %w: %w", p, apperrors.ErrSongNotFound, err)
				}
				songs = append(songs, song)
			}
			added, err := a.playlists.AddSongs(args[0], songs...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d songs\n", added, len(songs))
			return nil
		},
	}
}

func newPlaylistShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "List the songs of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.scan(cmd.Context()); err != nil {
				return err
			}

			songs, err := a.playlistSongs(args[0])
			if err != nil {
				return err
			}
			return g.writeSongs(cmd.OutOrStdout(), songs)
		},
	}
}

func newPlaylistDeleteCmd(g *globals) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a playlist",
		Long:  `Delete a playlist after confirmation. Smart playlists cannot be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()

			var prompter platform.Prompter = platform.Terminal{}
			if yes {
				prompter = platform.Answer{Yes: true}
			}
			deleted, err := a.playlists.Delete(cmd.Context(), args[0], prompter)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept playlist")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newPlaylistImportCmd(g *globals) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a playlist from an .m3u, .m3u8 or .pls file",
		Long: `Create a playlist from a playlist file. Entries that are URLs, missing
or not a supported audio format are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := playlist.ParseFile(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()

			songs := make([]library.Song, 0, len(paths))
			for _, p := range paths {
				song, err := library.ReadSong(p)
				if err != nil {
					g.logger.Warn("skipping playlist entry", "path", p, "error", err)
					continue
				}
				songs = append(songs, song)
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			u, err := a.playlists.Create(name)
			if err != nil {
				return err
			}
			added, err := a.playlists.AddSongs(u.ID, songs...)
			if err != nil {
				return err
			}
			if g.jsonOut {
				u, _ = a.playlists.Get(u.ID)
				return printJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s) with %d of %d entries\n", u.Name, u.ID, added, len(paths))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "playlist name (default: file name)")
	return cmd
}

func newPlaylistExportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <file>",
		Short: "Write a playlist as an extended M3U file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.scan(cmd.Context()); err != nil {
				return err
			}

			songs, err := a.playlistSongs(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[1], err)
			}
			if err := playlist.WriteM3U(f, songs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d songs to %s\n", len(songs), args[1])
			return nil
		},
	}
}
