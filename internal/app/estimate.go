package app

import (
	"npmfootprint/internal/report"

	"github.com/spf13/cobra"
)

func (a *App) newEstimateCmd() *cobra.Command {
	var (
		sizeKb     float64
		downloads  float64
		tablesFile string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the footprint of a payload without fetching stats",
		Example: `  footprint estimate --size-kb 100000 --downloads 1000
  footprint estimate --size-kb 6.4 --downloads 25000000 --tables tables.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			est, err := loadEstimator(tablesFile)
			if err != nil {
				return err
			}

			single := est.EstimateSingleTransfer(sizeKb, downloads)
			weekly := est.WeeklyReport(sizeKb, downloads)

			cmd.Printf("CO2 per GB:        %s g\n", report.FormatFloat(est.TotalCo2PerGB(), 4))
			cmd.Printf("kWh per transfer:  %s\n", report.FormatFloat(single.ConsumedKWh, 6))
			cmd.Printf("Weekly energy:     %s kWh\n", report.FormatFloat(weekly.ConsumedKWh, 6))
			cmd.Printf("Weekly emissions:  %s kg (%s t)\n", report.FormatFloat(weekly.Kg, 6), report.FormatFloat(weekly.T, 2))
			return nil
		},
	}

	cmd.Flags().Float64Var(&sizeKb, "size-kb", 0, "transferred size in kilobytes")
	cmd.Flags().Float64Var(&downloads, "downloads", 0, "number of transfers in the week")
	cmd.Flags().StringVar(&tablesFile, "tables", "", "YAML file with gridIntensities/contributions overrides")
	_ = cmd.MarkFlagRequired("size-kb")
	_ = cmd.MarkFlagRequired("downloads")

	return cmd
}
