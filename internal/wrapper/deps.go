package wrapper

import (
	"context"
	"npmfootprint/internal/dto/registry_dto"
)

type statsClient interface {
	FetchDownloads(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error)
	FetchSize(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error)
}
