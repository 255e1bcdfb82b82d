package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the janitarr server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new janitarr API client.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		baseURL: serverURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error %d (%s): %s", resp.StatusCode, apiErr.Code, apiErr.Error)
		}
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Overseerr bool `json:"overseerr"`
	Radarr    bool `json:"radarr"`
	Sonarr    bool `json:"sonarr"`
}

type NoticeResponse struct {
	RequestID int64  `json:"request_id"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	DaysLeft  int    `json:"days_left,omitempty"`
}

type SummaryResponse struct {
	Checked   int              `json:"checked"`
	Reminders []NoticeResponse `json:"reminders"`
	Deletions []NoticeResponse `json:"deletions"`
	Failures  int              `json:"failures"`
}

type ItemResponse struct {
	Request struct {
		ID          int64 `json:"id"`
		RequestedBy struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"requestedBy"`
	} `json:"request"`
	Media struct {
		Title          string  `json:"title"`
		Available      bool    `json:"available"`
		AvailableSince *string `json:"available_since"`
		SizeOnDisk     int64   `json:"size_on_disk"`
	} `json:"media"`
	Decision struct {
		Remind   bool `json:"remind"`
		Delete   bool `json:"delete"`
		DaysLeft int  `json:"days_left"`
	} `json:"decision"`
	Extended bool `json:"extended"`
	Reminded bool `json:"reminded"`
}

type CheckResponse struct {
	RunID string         `json:"run_id"`
	Items []ItemResponse `json:"items"`
}

type ExtendResponse struct {
	RequestID int64 `json:"request_id"`
	Granted   bool  `json:"granted"`
}

type RunResponse struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Trigger    string  `json:"trigger"`
	StartedAt  string  `json:"started_at"`
	FinishedAt *string `json:"finished_at"`
	Checked    int     `json:"checked"`
	Reminders  int     `json:"reminders"`
	Deletions  int     `json:"deletions"`
	Failures   int     `json:"failures"`
	Error      string  `json:"error,omitempty"`
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Check() (*CheckResponse, error) {
	var resp CheckResponse
	if err := c.post("/api/v1/check", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Process() (*SummaryResponse, error) {
	var resp SummaryResponse
	if err := c.post("/api/v1/process", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Extend(requestID, userID int64) (*ExtendResponse, error) {
	var resp ExtendResponse
	body := map[string]int64{"user_id": userID}
	if err := c.post(fmt.Sprintf("/api/v1/requests/%d/extend", requestID), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Runs(limit int) ([]RunResponse, error) {
	var resp []RunResponse
	path := "/api/v1/runs"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
