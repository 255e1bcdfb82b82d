// Package sonarr is a client for the Sonarr v3 API.
package sonarr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrUnavailable indicates Sonarr could not be reached or returned an
// error status.
var ErrUnavailable = errors.New("sonarr unavailable")

// Client is a Sonarr API client authenticated with an API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new Sonarr client.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: %s", ErrUnavailable, method, endpoint, resp.Status)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
	}
	return nil
}

// Ping checks that the Sonarr API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v3/system/status", nil, nil)
}

// Series fetches a series by its Sonarr ID.
func (c *Client) Series(ctx context.Context, id int64) (*Series, error) {
	var s Series
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v3/series/%d", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSeasonMonitoring sets the monitored flag on the given seasons.
// Sonarr's PUT replaces the series record from the request body, so the
// full document is fetched, mutated in place and written back; fields
// this client does not model must survive the round-trip untouched.
func (c *Client) UpdateSeasonMonitoring(ctx context.Context, id int64, seasons []int, monitored bool) error {
	var doc map[string]any
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v3/series/%d", id), nil, &doc); err != nil {
		return err
	}

	want := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		want[s] = true
	}
	entries, _ := doc["seasons"].([]any)
	for _, entry := range entries {
		season, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if num, ok := season["seasonNumber"].(float64); ok && want[int(num)] {
			season["monitored"] = monitored
		}
	}

	jsonBody, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal series %d: %w", id, err)
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v3/series/%d", id), bytes.NewReader(jsonBody), nil)
}

// Episodes fetches the episodes of one season, including file details.
func (c *Client) Episodes(ctx context.Context, seriesID int64, season int) ([]Episode, error) {
	params := url.Values{}
	params.Set("seriesId", strconv.FormatInt(seriesID, 10))
	params.Set("seasonNumber", strconv.Itoa(season))
	params.Set("includeEpisodeFile", "true")

	var episodes []Episode
	if err := c.do(ctx, http.MethodGet, "/api/v3/episode?"+params.Encode(), nil, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// DeleteEpisodeFile removes one episode file from disk.
func (c *Client) DeleteEpisodeFile(ctx context.Context, fileID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v3/episodefile/%d", fileID), nil, nil)
}

// DeleteSeries removes the series record. Files already deleted per
// episode are left alone.
func (c *Client) DeleteSeries(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/v3/series/%d?deleteFiles=false&addImportListExclusion=false", id)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}
