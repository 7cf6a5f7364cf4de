package handler

import (
	"context"

	"npmfootprint/internal/report"
	"npmfootprint/internal/schema"
)

type footprintReporter interface {
	Report(ctx context.Context, runID string, packages []schema.Package, window schema.Window) report.Document
}
