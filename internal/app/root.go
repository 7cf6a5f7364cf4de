package app

import (
	"fmt"
	"strings"
	"time"

	"npmfootprint/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *App) newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Estimate the carbon footprint of npm package downloads",
		Long: `footprint fetches weekly download counts and bundle sizes of npm packages
and estimates the energy and CO2 cost of transferring them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.FromEnv()
			if err != nil {
				return err
			}
			a.settings = settings

			level := settings.LogLevel
			if debug {
				level = zerolog.LevelDebugValue
			}
			return a.setupLogger(level)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		a.newReportCmd(),
		a.newEstimateCmd(),
		a.newServeCmd(),
		a.newLastCmd(),
	)
	return cmd
}

func (a *App) setupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: a.errOut, TimeFormat: time.RFC3339}).Level(lvl)
	return nil
}
