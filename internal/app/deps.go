package app

import (
	"context"

	"npmfootprint/internal/report"
)

type documentReader interface {
	Get(ctx context.Context, key string) (report.Document, error)
}
