// Package cli implements the crossroads command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olivier-w/crossroads/internal/config"
	apperrors "github.com/olivier-w/crossroads/internal/errors"
)

// globals holds the persistent flags and what PersistentPreRunE loads.
type globals struct {
	cfgFile string
	jsonOut bool
	verbose bool

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "crossroads",
		Short: "A personal music player for your terminal",
		Long: `Crossroads turns a folder of local audio files into a browsable library,
plays them in the order you choose, keeps your listening history and builds
smart playlists from it.

Run without a command to open the player.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.closeLog != nil {
				return g.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.cfgFile, "config", "c", "", "config file (default: ~/.crossroadsrc)")
	root.PersistentFlags().BoolVarP(&g.jsonOut, "json", "j", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newTUICmd(g),
		newScanCmd(g),
		newStatsCmd(g),
		newSmartCmd(g),
		newPlaylistCmd(g),
		newFavoriteCmd(g),
		newLyricsCmd(g),
		newConfigCmd(g),
	)
	return root
}

// skipConfig marks commands that must run without a readable config file.
const skipConfig = "skip-config"

func (g *globals) init(cmd *cobra.Command) error {
	if _, ok := cmd.Annotations[skipConfig]; ok {
		g.cfg = config.Default()
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	var err error
	if g.cfgFile != "" {
		g.cfg, err = config.LoadFrom(g.cfgFile)
	} else {
		g.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := g.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, err)
	}

	// The player owns the terminal, so only plain commands echo logs.
	echo := g.verbose && !isTUI(cmd)
	g.logger, g.closeLog, err = setupLogging(g.cfg.Log, g.verbose, echo)
	if err != nil {
		return err
	}
	return nil
}

func isTUI(cmd *cobra.Command) bool {
	return cmd == cmd.Root() || cmd.Name() == "tui"
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}
}
