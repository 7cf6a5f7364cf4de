package wrapper

import (
	"context"
	"fmt"
	"npmfootprint/internal/dto/registry_dto"
	"npmfootprint/internal/schema"
	"time"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	statsClient statsClient
	timeout     time.Duration
}

func New(statsClient statsClient,
	timeout time.Duration,
) *Service {
	return &Service{
		statsClient: statsClient,
		timeout:     timeout,
	}
}

// GetStats queries both sources for one package under a shared timeout
func (s *Service) GetStats(ctx context.Context, pkg schema.Package, window schema.Window) (schema.Stats, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		downloads *registry_dto.DownloadsResponse
		size      *registry_dto.SizeResponse
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		downloads, err = s.statsClient.FetchDownloads(gCtx, pkg.Name, window.StartDate(), window.EndDate())
		if err != nil {
			return fmt.Errorf("downloads of %s: %w", pkg.Name, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		size, err = s.statsClient.FetchSize(gCtx, pkg.Name, pkg.VersionOrLatest())
		if err != nil {
			return fmt.Errorf("size of %s: %w", pkg, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return schema.Stats{}, err
	}

	return toSchema(downloads, size), nil
}

func toSchema(downloads *registry_dto.DownloadsResponse, size *registry_dto.SizeResponse) schema.Stats {
	var stats schema.Stats
	if downloads != nil {
		d := downloads.Downloads
		stats.Downloads = &d
	}
	if size != nil {
		b := size.Size
		stats.SizeBytes = &b
	}
	return stats
}
