// Package radarr is a client for the Radarr v3 API.
package radarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable indicates Radarr could not be reached or returned an
// error status.
var ErrUnavailable = errors.New("radarr unavailable")

// Client is a Radarr API client authenticated with an API key.
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

// New creates a new Radarr client.
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

func (c *Client) do(ctx context.Context, method, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

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

// Ping checks that the Radarr API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v3/system/status", nil)
}

// Movie fetches a movie by its Radarr ID.
func (c *Client) Movie(ctx context.Context, id int64) (*Movie, error) {
	var m Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v3/movie/%d", id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMovie removes a movie record and its files from disk.
func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/v3/movie/%d?deleteFiles=true&addImportExclusion=false", id)
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}
