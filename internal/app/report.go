package app

import (
	"fmt"
	"time"

	"npmfootprint/internal/client"
	"npmfootprint/internal/config"
	"npmfootprint/internal/estimator"
	"npmfootprint/internal/report"
	"npmfootprint/internal/schema"
	"npmfootprint/internal/service"
	"npmfootprint/internal/wrapper"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	packagesFile string
	tablesFile   string
	out          string
	start        string
	end          string
	strict       bool
}

func (a *App) newReportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report [name[@version]...]",
		Short: "Fetch stats and print the weekly footprint of packages",
		Example: `  footprint report react lodash@4.17.21 @babel/core
  footprint report --packages-file footprint.yaml --out reports/week.json
  footprint report react --start 2024-03-01 --end 2024-03-07`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.packagesFile, "packages-file", "", "YAML file with a packages list")
	cmd.Flags().StringVar(&flags.tablesFile, "tables", "", "YAML file with gridIntensities/contributions overrides")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write the JSON report to this path")
	cmd.Flags().StringVar(&flags.start, "start", "", "first day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "last day of the window (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with code 2 when any package failed")
	cmd.MarkFlagsRequiredTogether("start", "end")

	return cmd
}

func (a *App) runReport(cmd *cobra.Command, args []string, flags reportFlags) error {
	packages, err := config.ParsePackages(args)
	if err != nil {
		return err
	}
	if flags.packagesFile != "" {
		f, err := config.LoadFile(flags.packagesFile)
		if err != nil {
			return err
		}
		filePackages, err := f.PackageList()
		if err != nil {
			return err
		}
		packages = append(packages, filePackages...)
	}
	if len(packages) == 0 {
		return fmt.Errorf("no packages given, pass names or --packages-file")
	}

	window := schema.LastWeek(time.Now())
	if flags.start != "" {
		if window, err = schema.ParseWindow(flags.start, flags.end); err != nil {
			return err
		}
	}

	est, err := loadEstimator(flags.tablesFile)
	if err != nil {
		return err
	}

	svc, err := a.newService(est)
	if err != nil {
		return err
	}

	sink, closeSink := a.newSink(cmd, flags.out)
	defer closeSink()

	runID := report.NewRunID()
	log.Logger = log.With().Str("runId", runID).Logger()
	ctx := cmd.Context()

	log.Info().
		Int("packages", len(packages)).
		Str("start", window.StartDate()).
		Str("end", window.EndDate()).
		Msg("collecting package stats")

	doc := svc.Report(ctx, runID, packages, window)

	if err := sink.Write(ctx, doc); err != nil {
		return err
	}

	failed := doc.Failed()
	log.Info().Int("failed", failed).Float64("kg", doc.Total.Kg).Msg("report written")

	if flags.strict && failed > 0 {
		return &exitError{code: partialCode, msg: fmt.Sprintf("%d of %d packages failed", failed, len(doc.Packages))}
	}
	return nil
}

func (a *App) newService(est *estimator.Estimator) (*service.Service, error) {
	statsClient, err := client.NewClient(a.settings.DownloadsURL, a.settings.SizeURL, a.settings.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize a registry client: %w", err)
	}
	statsWrapper := wrapper.New(statsClient, a.settings.StatTimeout)
	return service.New(statsWrapper, est, a.settings.Concurrency), nil
}

// newSink always prints to the console and adds file and redis sinks when configured.
func (a *App) newSink(cmd *cobra.Command, out string) (report.Sink, func()) {
	sinks := report.MultiSink{report.ConsoleSink{Out: cmd.OutOrStdout()}}
	if out != "" {
		sinks = append(sinks, report.FileSink{Path: out})
	}
	if !a.settings.RedisEnabled() {
		return sinks, func() {}
	}

	store := a.newDocumentStore()
	sinks = append(sinks, report.RedisSink{
		Store: store,
		Key:   a.settings.RedisReportKey,
		TTL:   a.settings.RedisReportTTL,
	})
	return sinks, func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("couldn't close redis client")
		}
	}
}

func loadEstimator(tablesFile string) (*estimator.Estimator, error) {
	if tablesFile == "" {
		return estimator.Default(), nil
	}
	f, err := config.LoadFile(tablesFile)
	if err != nil {
		return nil, err
	}
	cfg, err := f.EstimatorConfig()
	if err != nil {
		return nil, err
	}
	return estimator.New(cfg), nil
}
