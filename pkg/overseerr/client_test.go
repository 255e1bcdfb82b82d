package overseerr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOverseerr creates a test server that simulates the Overseerr API.
func mockOverseerr(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func writeTestJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

func TestPing(t *testing.T) {
	var gotKey string
	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/status": func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("X-Api-Key")
			writeTestJSON(w, map[string]string{"version": "1.33.2"})
		},
	})
	defer server.Close()

	client := New(server.URL, "secret-key")
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "secret-key", gotKey)
}

func TestPing_Unreachable(t *testing.T) {
	server := mockOverseerr(t, nil)
	server.Close()

	client := New(server.URL, "key")
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRequestCount(t *testing.T) {
	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/request/count": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, map[string]int{"total": 57, "movie": 40, "tv": 17})
		},
	})
	defer server.Close()

	client := New(server.URL, "key")
	total, err := client.RequestCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 57, total)
}

func TestAllRequests_Paginates(t *testing.T) {
	const total = 120
	var fetches []int

	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/request/count": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, map[string]int{"total": total})
		},
		"/api/v1/request": func(w http.ResponseWriter, r *http.Request) {
			take, _ := strconv.Atoi(r.URL.Query().Get("take"))
			skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
			fetches = append(fetches, skip)

			var results []Request
			for i := skip; i < skip+take && i < total; i++ {
				results = append(results, Request{
					ID:    int64(i + 1),
					Type:  "movie",
					Media: Media{ID: int64(1000 + i), Status: MediaStatusAvailable},
				})
			}
			writeTestJSON(w, requestPage{
				PageInfo: pageInfo{Results: total},
				Results:  results,
			})
		},
	})
	defer server.Close()

	client := New(server.URL, "key")
	requests, err := client.AllRequests(context.Background())

	require.NoError(t, err)
	assert.Len(t, requests, total)
	assert.Equal(t, []int{0, 100}, fetches, "120 requests at page size 100 is exactly two pages")
	assert.Equal(t, int64(1), requests[0].ID)
	assert.Equal(t, int64(120), requests[119].ID)
}

func TestAllRequests_StopsOnShortPage(t *testing.T) {
	var fetches int
	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/request/count": func(w http.ResponseWriter, r *http.Request) {
			// The count can race with deletions; claim more than exist.
			writeTestJSON(w, map[string]int{"total": 250})
		},
		"/api/v1/request": func(w http.ResponseWriter, r *http.Request) {
			fetches++
			writeTestJSON(w, requestPage{Results: []Request{{ID: 1}, {ID: 2}}})
		},
	})
	defer server.Close()

	client := New(server.URL, "key")
	requests, err := client.AllRequests(context.Background())

	require.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, 1, fetches, "a short page means there is nothing left to fetch")
}

func TestRequest(t *testing.T) {
	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/request/42": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, Request{
				ID:          42,
				Type:        "tv",
				Media:       Media{ID: 9, Status: MediaStatusPartiallyAvailable, ExternalServiceID: 301},
				RequestedBy: User{ID: 7, Email: "viewer@example.com"},
				Seasons:     []Season{{SeasonNumber: 1}, {SeasonNumber: 2}},
			})
		},
	})
	defer server.Close()

	client := New(server.URL, "key")
	req, err := client.Request(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), req.ID)
	assert.Equal(t, "viewer@example.com", req.RequestedBy.Email)
	assert.Equal(t, []int{1, 2}, req.SeasonNumbers())
	assert.True(t, req.Media.Status.HasFiles())
}

func TestRequest_NotFound(t *testing.T) {
	server := mockOverseerr(t, nil)
	defer server.Close()

	client := New(server.URL, "key")
	_, err := client.Request(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRequest(t *testing.T) {
	var gotMethod string
	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/request/42": func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			w.WriteHeader(http.StatusNoContent)
		},
	})
	defer server.Close()

	client := New(server.URL, "key")
	require.NoError(t, client.DeleteRequest(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestDeleteMedia_ServerError(t *testing.T) {
	server := mockOverseerr(t, map[string]http.HandlerFunc{
		"/api/v1/media/9": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	defer server.Close()

	client := New(server.URL, "key")
	err := client.DeleteMedia(context.Background(), 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMediaStatus_HasFiles(t *testing.T) {
	tests := []struct {
		status MediaStatus
		want   bool
	}{
		{MediaStatusUnknown, false},
		{MediaStatusPending, false},
		{MediaStatusProcessing, false},
		{MediaStatusPartiallyAvailable, true},
		{MediaStatusAvailable, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.HasFiles())
		})
	}
}
