// Package server exposes the janitor over HTTP and runs it on a schedule.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmunix/janitarr/internal/janitor"
	"github.com/vmunix/janitarr/internal/ledger"
)

// Pinger reports whether a remote system is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds the server's collaborators.
type Deps struct {
	Janitor *janitor.Janitor
	Ledger  *ledger.Store
	Broker  janitor.Broker
	Movies  Pinger
	Series  Pinger
}

// Server is the janitarr HTTP API.
type Server struct {
	deps    Deps
	apiKey  string
	log     *slog.Logger
	metrics *Metrics

	// runMu serializes manual and scheduled runs in this process. The
	// ledger's conflict-is-success inserts keep a second process safe.
	runMu sync.Mutex
}

// New creates the API server. An empty apiKey leaves the API open.
func New(deps Deps, apiKey string, reg prometheus.Registerer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Server{
		deps:    deps,
		apiKey:  apiKey,
		log:     log.With("component", "api"),
		metrics: NewMetrics(reg),
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux, gatherer prometheus.Gatherer) {
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/v1/status", s.requireKey(s.status))
	mux.HandleFunc("POST /api/v1/check", s.requireKey(s.check))
	mux.HandleFunc("POST /api/v1/process", s.requireKey(s.process))
	mux.HandleFunc("POST /api/v1/requests/{id}/extend", s.requireKey(s.extend))
	mux.HandleFunc("GET /api/v1/runs", s.requireKey(s.listRuns))
}

// requireKey validates the X-Api-Key header when a key is configured.
func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
			return
		}
		next(w, r)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StatusResponse reports reachability of the three upstream systems.
type StatusResponse struct {
	Overseerr bool `json:"overseerr"`
	Radarr    bool `json:"radarr"`
	Sonarr    bool `json:"sonarr"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp := StatusResponse{
		Overseerr: s.deps.Broker.Ping(ctx) == nil,
		Radarr:    s.deps.Movies.Ping(ctx) == nil,
		Sonarr:    s.deps.Series.Ping(ctx) == nil,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	run, err := s.deps.Ledger.StartRun(ledger.RunKindCheck, ledger.TriggerManual)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	items, err := s.deps.Janitor.Check(r.Context())
	if err != nil {
		run.Error = err.Error()
		s.finishRun(run, "error")
		writeError(w, http.StatusBadGateway, "UPSTREAM", err.Error())
		return
	}

	run.Checked = len(items)
	s.finishRun(run, "ok")
	if items == nil {
		items = []janitor.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": run.ID,
		"items":  items,
	})
}

func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	summary, err := s.RunProcess(r.Context(), ledger.TriggerManual)
	if err != nil {
		if errors.Is(err, errRunInProgress) {
			writeError(w, http.StatusConflict, "RUN_IN_PROGRESS", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "UPSTREAM", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

var errRunInProgress = errors.New("a run is already in progress")

// RunProcess executes one process cycle with the in-process overlap
// guard, run recording and metrics. The scheduler calls it too.
func (s *Server) RunProcess(ctx context.Context, trigger string) (*janitor.Summary, error) {
	if !s.runMu.TryLock() {
		return nil, errRunInProgress
	}
	defer s.runMu.Unlock()

	run, err := s.deps.Ledger.StartRun(ledger.RunKindProcess, trigger)
	if err != nil {
		return nil, err
	}

	summary, err := s.deps.Janitor.Process(ctx)
	if err != nil {
		run.Error = err.Error()
		if summary != nil {
			s.recordSummary(run, summary)
		}
		s.finishRun(run, "error")
		s.metrics.Runs.WithLabelValues(ledger.RunKindProcess, trigger, "error").Inc()
		return nil, err
	}

	s.recordSummary(run, summary)
	s.finishRun(run, "ok")
	s.metrics.Runs.WithLabelValues(ledger.RunKindProcess, trigger, "ok").Inc()
	s.metrics.Reminders.Add(float64(len(summary.Reminders)))
	s.metrics.Deletions.Add(float64(len(summary.Deletions)))
	s.metrics.Failures.Add(float64(summary.Failures))
	return summary, nil
}

func (s *Server) recordSummary(run *ledger.Run, summary *janitor.Summary) {
	run.Checked = summary.Checked
	run.Reminders = len(summary.Reminders)
	run.Deletions = len(summary.Deletions)
	run.Failures = summary.Failures
}

func (s *Server) finishRun(run *ledger.Run, status string) {
	if err := s.deps.Ledger.FinishRun(run); err != nil {
		s.log.Error("failed to record run", "run_id", run.ID, "status", status, "error", err)
	}
}

type extendRequest struct {
	UserID int64 `json:"user_id"`
}

type extendResponse struct {
	RequestID int64 `json:"request_id"`
	Granted   bool  `json:"granted"`
}

func (s *Server) extend(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request id")
		return
	}

	var body extendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}

	granted, err := s.deps.Janitor.RequestExtension(r.Context(), id, body.UserID)
	switch {
	case errors.Is(err, janitor.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	case errors.Is(err, janitor.ErrNotAvailable):
		writeError(w, http.StatusConflict, "NOT_AVAILABLE", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, "UPSTREAM", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, extendResponse{RequestID: id, Granted: granted})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.deps.Ledger.ListRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	if runs == nil {
		runs = []*ledger.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}
