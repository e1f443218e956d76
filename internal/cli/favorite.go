package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olivier-w/crossroads/internal/smart"
)

func newFavoriteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite [file]",
		Aliases: []string{"fav"},
		Short:   "Toggle or list favorites",
		Long: `With a file, add it to Favorites or remove it if it is already there.
Without arguments, list the favorites that are still in the library.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 0 {
				if err := a.scan(cmd.Context()); err != nil {
					return err
				}
				return g.writeSongs(cmd.OutOrStdout(), smart.Evaluate(smart.Favorites, a.smartInput()))
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			on, err := a.favorites.Toggle(path)
			if err != nil {
				return err
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "favorite": on})
			}
			if on {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to Favorites\n", filepath.Base(path))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from Favorites\n", filepath.Base(path))
			}
			return nil
		},
	}
}
