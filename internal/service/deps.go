package service

import (
	"context"
	"npmfootprint/internal/estimator"
	"npmfootprint/internal/schema"
)

type statsGetter interface {
	GetStats(ctx context.Context, pkg schema.Package, window schema.Window) (schema.Stats, error)
}

type footprintEstimator interface {
	WeeklyReport(sizeKb, downloadsLastWeek float64) estimator.WeeklyReport
}
