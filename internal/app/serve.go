package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"npmfootprint/internal/estimator"
	"npmfootprint/internal/handler"
	"npmfootprint/internal/middleware"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *App) newServeCmd() *cobra.Command {
	var (
		port       string
		tablesFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve footprint reports over HTTP",
		Long:  "Serves POST /api/v1/footprint, taking {\"packages\":[{\"name\":\"react\"}]} and answering with a report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = a.settings.Port
			}
			est, err := loadEstimator(tablesFile)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), port, est)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $PORT or 8080)")
	cmd.Flags().StringVar(&tablesFile, "tables", "", "YAML file with gridIntensities/contributions overrides")

	return cmd
}

func (a *App) serve(ctx context.Context, port string, est *estimator.Estimator) error {
	svc, err := a.newService(est)
	if err != nil {
		return err
	}

	footprintHandler := handler.New(svc, a.settings.APITimeout)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/footprint", middleware.LoggingMiddleware(middleware.JsonMiddleware(http.HandlerFunc(footprintHandler.Handle))))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
