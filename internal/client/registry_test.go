package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"npmfootprint/internal/dto/registry_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripFunc stubs the HTTP transport.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestNewClient(t *testing.T) {
	testCases := []struct {
		name         string
		downloadsURL string
		sizeURL      string
		expectedURL  string
		wantErr      bool
	}{
		{
			name:    "err, empty downloads url",
			sizeURL: "http://size",
			wantErr: true,
		},
		{
			name:         "err, empty size url",
			downloadsURL: "http://downloads",
			wantErr:      true,
		},
		{
			name:         "trailing slash trimmed",
			downloadsURL: "http://example.com/downloads/point/",
			sizeURL:      "http://example.com/api/size",
			expectedURL:  "http://example.com/downloads/point",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(tc.downloadsURL, tc.sizeURL, time.Millisecond)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedURL, client.DownloadsURL)
		})
	}
}

func TestFetchDownloads(t *testing.T) {
	testCases := []struct {
		name             string
		pkg              string
		transport        http.RoundTripper
		expectedResponse *registry_dto.DownloadsResponse
		expectedError    string
	}{
		{
			name: "ok, success",
			pkg:  "react",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				if req.Method != http.MethodGet {
					return nil, errors.New("wrong method")
				}
				if req.URL.Path != "/downloads/point/2024-01-01:2024-01-07/react" {
					return nil, errors.New("wrong path " + req.URL.Path)
				}
				return jsonResponse(http.StatusOK,
					`{"downloads":1000,"start":"2024-01-01","end":"2024-01-07","package":"react"}`), nil
			}),
			expectedResponse: &registry_dto.DownloadsResponse{
				Downloads: 1000, Start: "2024-01-01", End: "2024-01-07", Package: "react",
			},
		},
		{
			name: "scoped package keeps slash",
			pkg:  "@babel/core",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				if req.URL.Path != "/downloads/point/2024-01-01:2024-01-07/@babel/core" {
					return nil, errors.New("wrong path " + req.URL.Path)
				}
				return jsonResponse(http.StatusOK, `{"downloads":7,"package":"@babel/core"}`), nil
			}),
			expectedResponse: &registry_dto.DownloadsResponse{Downloads: 7, Package: "@babel/core"},
		},
		{
			name: "error field",
			pkg:  "missing",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"error":"package missing not found"}`), nil
			}),
			expectedError: "package missing not found",
		},
		{
			name: "code is not 200",
			pkg:  "react",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusTooManyRequests, `rate limited`), nil
			}),
			expectedError: "unexpected status code",
		},
		{
			name: "network error",
			pkg:  "react",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("network error")
			}),
			expectedError: "network error",
		},
		{
			name: "decoding error JSON",
			pkg:  "react",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `invalid json`), nil
			}),
			expectedError: "unmarshaling",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient("http://dummy/downloads/point", "http://dummy/api/size", 0)
			require.NoError(t, err)
			client.client.Transport = tc.transport

			resp, err := client.FetchDownloads(context.Background(), tc.pkg, "2024-01-01", "2024-01-07")
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tc.expectedError), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResponse, resp)
		})
	}
}

func TestFetchSize(t *testing.T) {
	testCases := []struct {
		name             string
		transport        http.RoundTripper
		expectedResponse *registry_dto.SizeResponse
		expectedError    string
	}{
		{
			name: "ok, success",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				if got := req.URL.Query().Get("package"); got != "@babel/core@7.24.0" {
					return nil, errors.New("wrong package query " + got)
				}
				return jsonResponse(http.StatusOK,
					`{"name":"@babel/core","version":"7.24.0","size":100000,"gzip":30000}`), nil
			}),
			expectedResponse: &registry_dto.SizeResponse{
				Name: "@babel/core", Version: "7.24.0", Size: 100000, Gzip: 30000,
			},
		},
		{
			name: "error object",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK,
					`{"error":{"code":"PackageNotFoundError","message":"The package you were looking for doesn't exist."}}`), nil
			}),
			expectedError: "doesn't exist",
		},
		{
			name: "code is not 200",
			transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `error`), nil
			}),
			expectedError: "unexpected status code",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient("http://dummy/downloads/point", "http://dummy/api/size", 0)
			require.NoError(t, err)
			client.client.Transport = tc.transport

			resp, err := client.FetchSize(context.Background(), "@babel/core", "7.24.0")
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResponse, resp)
		})
	}
}
