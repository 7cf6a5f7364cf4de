package app

import (
	"errors"
	"fmt"

	"npmfootprint/internal/report"
	redisStorage "npmfootprint/internal/storage/redis"

	"github.com/spf13/cobra"
)

func (a *App) newLastCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Print the last report stored in redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.settings.RedisEnabled() {
				return errors.New("REDIS_ADDR is not set")
			}
			store := a.newDocumentStore()
			defer store.Close()

			return a.printLast(cmd, store, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON document")

	return cmd
}

func (a *App) printLast(cmd *cobra.Command, store documentReader, asJSON bool) error {
	doc, err := store.Get(cmd.Context(), a.settings.RedisReportKey)
	if errors.Is(err, redisStorage.ErrNotFound) {
		return fmt.Errorf("no report stored under %s", a.settings.RedisReportKey)
	}
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	if !asJSON {
		return report.ConsoleSink{Out: cmd.OutOrStdout()}.Write(cmd.Context(), doc)
	}
	data, err := report.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
