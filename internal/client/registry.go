package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"npmfootprint/internal/dto/registry_dto"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type Client struct {
	DownloadsURL string
	SizeURL      string
	client       *http.Client
}

func NewClient(downloadsURL, sizeURL string, timeout time.Duration) (*Client, error) {
	if downloadsURL == "" {
		return nil, errors.New("downloads api url is empty")
	}
	if sizeURL == "" {
		return nil, errors.New("size api url is empty")
	}
	return &Client{
		DownloadsURL: strings.TrimRight(downloadsURL, "/"),
		SizeURL:      sizeURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchDownloads gets the download count of a package between two ISO-8601 dates
func (c *Client) FetchDownloads(ctx context.Context, pkg, start, end string) (*registry_dto.DownloadsResponse, error) {
	// scoped names keep their slash in the path
	endpoint := fmt.Sprintf("%s/%s:%s/%s", c.DownloadsURL, start, end, pkg)

	var response registry_dto.DownloadsResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, fmt.Errorf("downloads api: %s", response.Error)
	}
	return &response, nil
}

// FetchSize gets the transferred size of a package version
func (c *Client) FetchSize(ctx context.Context, pkg, version string) (*registry_dto.SizeResponse, error) {
	u, err := url.Parse(c.SizeURL)
	if err != nil {
		return nil, fmt.Errorf("err during parsing size api url: %w", err)
	}
	q := u.Query()
	q.Set("package", pkg+"@"+version)
	u.RawQuery = q.Encode()

	var response registry_dto.SizeResponse
	if err := c.get(ctx, u.String(), &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, fmt.Errorf("size api: %s", response.Error.Message)
	}
	return &response, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("err during creating a request with context: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("couldn't close a body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status code: " + resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("err during unmarshaling of a response: %w", err)
	}
	return nil
}
