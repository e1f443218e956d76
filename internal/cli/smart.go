package cli

import (
	"github.com/spf13/cobra"

	"github.com/olivier-w/crossroads/internal/smart"
)

func newSmartCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "smart <kind>",
		Short:     "List a smart playlist",
		Long:      `List the songs of a smart playlist: favorites, top-tracks, recent or recommendations.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(smart.Favorites), string(smart.TopTracks), string(smart.Recent), string(smart.Recommendations)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := smart.ParseKind(args[0])
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
			return g.writeSongs(cmd.OutOrStdout(), smart.Evaluate(kind, a.smartInput()))
		},
	}
}
