package service

import (
	"context"
	"time"

	"npmfootprint/internal/estimator"
	"npmfootprint/internal/report"
	"npmfootprint/internal/schema"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const bytesPerKb = 1000.0

type Service struct {
	stats       statsGetter
	estimator   footprintEstimator
	concurrency int
	now         func() time.Time
}

func New(stats statsGetter, estimator footprintEstimator, concurrency int) *Service {
	return &Service{
		stats:       stats,
		estimator:   estimator,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Report collects every package and aggregates the rows into a document.
func (s *Service) Report(ctx context.Context, runID string, packages []schema.Package, window schema.Window) report.Document {
	rows := s.Collect(ctx, packages, window)
	return report.New(runID, window, rows, s.now())
}

// Collect fetches stats and computes the footprint of every package.
// A failing package yields a row with an error marker and never stops the others.
// Rows follow the order of the deduplicated input.
func (s *Service) Collect(ctx context.Context, packages []schema.Package, window schema.Window) []schema.Row {
	if len(packages) == 0 {
		return []schema.Row{}
	}

	packages = removeDuplicates(packages)
	rows := make([]schema.Row, len(packages))

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for i, pkg := range packages {
		g.Go(func() error {
			rows[i] = s.collectOne(ctx, pkg, window)
			// never fail the group, failures live in the row
			return nil
		})
	}
	_ = g.Wait()

	return rows
}

func (s *Service) collectOne(ctx context.Context, pkg schema.Package, window schema.Window) schema.Row {
	stats, err := s.stats.GetStats(ctx, pkg, window)
	if err != nil {
		log.Warn().Err(err).Str("package", pkg.String()).Msg("couldn't get package stats")
		return schema.Row{Package: pkg, Err: err.Error()}
	}

	footprint := s.footprint(stats)
	log.Debug().
		Str("package", pkg.String()).
		Float64("kg", footprint.Kg).
		Float64("kWh", footprint.ConsumedKWh).
		Msg("package footprint")

	return schema.Row{
		Package:   pkg,
		Stats:     stats,
		Footprint: &footprint,
	}
}

// footprint treats a missing value as zero
func (s *Service) footprint(stats schema.Stats) estimator.WeeklyReport {
	var sizeKb, downloads float64
	if stats.SizeBytes != nil {
		sizeKb = float64(*stats.SizeBytes) / bytesPerKb
	}
	if stats.Downloads != nil {
		downloads = float64(*stats.Downloads)
	}
	return s.estimator.WeeklyReport(sizeKb, downloads)
}

func removeDuplicates(packages []schema.Package) []schema.Package {
	allKeys := make(map[string]bool)
	list := make([]schema.Package, 0, len(packages))
	for _, item := range packages {
		key := item.String()
		if _, value := allKeys[key]; !value {
			allKeys[key] = true
			list = append(list, item)
		}
	}
	return list
}
