package wrapper

import (
	"context"
	"errors"
	"testing"
	"time"

	"npmfootprint/internal/dto/registry_dto"
	"npmfootprint/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsClientMock implements the statsClient interface for testing.
type statsClientMock struct {
	downloadsFunc func(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error)
	sizeFunc      func(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error)
}

func (m *statsClientMock) FetchDownloads(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error) {
	return m.downloadsFunc(ctx, pkg, start, end)
}

func (m *statsClientMock) FetchSize(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error) {
	return m.sizeFunc(ctx, pkg, version)
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_GetStats(t *testing.T) {
	window, err := schema.ParseWindow("2024-01-01", "2024-01-07")
	require.NoError(t, err)

	okDownloads := func(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error) {
		if start != "2024-01-01" || end != "2024-01-07" {
			return nil, errors.New("wrong window")
		}
		return &registry_dto.DownloadsResponse{Downloads: 1000, Package: pkg}, nil
	}
	okSize := func(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error) {
		return &registry_dto.SizeResponse{Name: pkg, Version: version, Size: 100_000_000}, nil
	}

	testCases := []struct {
		name          string
		pkg           schema.Package
		downloads     func(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error)
		size          func(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error)
		expected      schema.Stats
		expectedError string
	}{
		{
			name:      "Successful response",
			pkg:       schema.Package{Name: "react", Version: "18.2.0"},
			downloads: okDownloads,
			size:      okSize,
			expected:  schema.Stats{Downloads: int64Ptr(1000), SizeBytes: int64Ptr(100_000_000)},
		},
		{
			name:      "Missing version asks for latest",
			pkg:       schema.Package{Name: "react"},
			downloads: okDownloads,
			size: func(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error) {
				if version != schema.LatestTag {
					return nil, errors.New("expected latest")
				}
				return &registry_dto.SizeResponse{Size: 5}, nil
			},
			expected: schema.Stats{Downloads: int64Ptr(1000), SizeBytes: int64Ptr(5)},
		},
		{
			name: "Downloads error",
			pkg:  schema.Package{Name: "react"},
			downloads: func(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error) {
				return nil, errors.New("fetch error")
			},
			size:          okSize,
			expectedError: "downloads of react: fetch error",
		},
		{
			name:      "Size error",
			pkg:       schema.Package{Name: "react", Version: "1.0.0"},
			downloads: okDownloads,
			size: func(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error) {
				return nil, errors.New("not found")
			},
			expectedError: "size of react@1.0.0: not found",
		},
		{
			name: "Timeout",
			pkg:  schema.Package{Name: "slow"},
			downloads: func(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
			size:          okSize,
			expectedError: "deadline exceeded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&statsClientMock{downloadsFunc: tc.downloads, sizeFunc: tc.size}, 50*time.Millisecond)

			stats, err := svc.GetStats(context.Background(), tc.pkg, window)
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stats)
		})
	}
}

func TestService_GetStats_ZeroTimeoutMeansNone(t *testing.T) {
	window, err := schema.ParseWindow("2024-01-01", "2024-01-07")
	require.NoError(t, err)

	svc := New(&statsClientMock{
		downloadsFunc: func(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
			return &registry_dto.DownloadsResponse{Downloads: 1000}, nil
		},
		sizeFunc: func(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &registry_dto.SizeResponse{Size: 100_000_000}, nil
		},
	}, 0)

	stats, err := svc.GetStats(context.Background(), schema.Package{Name: "react"}, window)
	require.NoError(t, err)
	assert.Equal(t, schema.Stats{Downloads: int64Ptr(1000), SizeBytes: int64Ptr(100_000_000)}, stats)
}

func TestToSchema(t *testing.T) {
	assert.Equal(t, schema.Stats{}, toSchema(nil, nil))

	stats := toSchema(&registry_dto.DownloadsResponse{Downloads: 3}, &registry_dto.SizeResponse{Size: 4})
	require.NotNil(t, stats.Downloads)
	require.NotNil(t, stats.SizeBytes)
	assert.Equal(t, int64(3), *stats.Downloads)
	assert.Equal(t, int64(4), *stats.SizeBytes)
}
