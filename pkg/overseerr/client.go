// Package overseerr is a client for the Overseerr request API.
package overseerr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultPageSize = 100

// Sentinel errors for Overseerr API responses.
var (
	ErrNotFound    = errors.New("request not found")
	ErrUnavailable = errors.New("overseerr unavailable")
)

// Client is an Overseerr API client authenticated with an API key.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageSize sets the page size used when listing requests.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "overseerr")
	}
}

// New creates a new Overseerr client.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: defaultPageSize,
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

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s %s: %s", ErrUnavailable, method, endpoint, resp.Status)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
	}
	return nil
}

// Ping checks that the Overseerr API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v1/status", nil)
}

// RequestCount returns the total number of requests known to Overseerr.
func (c *Client) RequestCount(ctx context.Context) (int, error) {
	var count countResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/request/count", &count); err != nil {
		return 0, err
	}
	return count.Total, nil
}

// Requests fetches one page of requests.
func (c *Client) Requests(ctx context.Context, take, skip int) ([]Request, error) {
	params := url.Values{}
	params.Set("take", strconv.Itoa(take))
	params.Set("skip", strconv.Itoa(skip))

	var page requestPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/request?"+params.Encode(), &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// AllRequests fetches every request, paging until the reported total is
// reached or a page comes back short.
func (c *Client) AllRequests(ctx context.Context) ([]Request, error) {
	total, err := c.RequestCount(ctx)
	if err != nil {
		return nil, err
	}

	var all []Request
	for skip := 0; skip < total; skip += c.pageSize {
		page, err := c.Requests(ctx, c.pageSize, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			break
		}
	}

	if c.log != nil {
		c.log.Debug("fetched requests", "count", len(all), "total", total)
	}
	return all, nil
}

// Request fetches a single request by ID.
func (c *Client) Request(ctx context.Context, id int64) (*Request, error) {
	var req Request
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/request/%d", id), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// DeleteRequest removes a request record.
func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/request/%d", id), nil)
}

// DeleteMedia removes a media record.
func (c *Client) DeleteMedia(ctx context.Context, mediaID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/media/%d", mediaID), nil)
}
