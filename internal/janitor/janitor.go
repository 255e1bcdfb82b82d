// Package janitor reconciles the media library against the retention
// policy: it checks what is on disk, reminds requesters before removal,
// and deletes media past its window across Overseerr, Radarr and
// Sonarr.
package janitor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/vmunix/janitarr/internal/ledger"
	"github.com/vmunix/janitarr/internal/media"
	"github.com/vmunix/janitarr/internal/notify"
	"github.com/vmunix/janitarr/internal/retention"
	"github.com/vmunix/janitarr/pkg/overseerr"
)

//go:generate mockgen -destination mocks/mocks.go -package mocks github.com/vmunix/janitarr/internal/janitor Broker,Library

// Broker is the system of record for media requests.
type Broker interface {
	// AllRequests returns every request, across all pages.
	AllRequests(ctx context.Context) ([]overseerr.Request, error)
	// Request returns one request, or overseerr.ErrNotFound.
	Request(ctx context.Context, id int64) (*overseerr.Request, error)
	// DeleteRequest removes the request record.
	DeleteRequest(ctx context.Context, id int64) error
	// DeleteMedia removes the broker's media record.
	DeleteMedia(ctx context.Context, mediaID int64) error
	// Ping checks broker reachability.
	Ping(ctx context.Context) error
}

// Library resolves availability and deletes media, dispatching on type.
type Library interface {
	GetMedia(ctx context.Context, t media.Type, externalServiceID int64, seasons []int) (*media.Info, error)
	DeleteMedia(ctx context.Context, t media.Type, externalServiceID int64, seasons []int) error
}

// Config holds the janitor's policy knobs.
type Config struct {
	Policy        retention.Policy
	ExtensionDays int
	// Parallelism caps concurrent snapshot resolutions. 1 means
	// sequential; zero or negative falls back to 1.
	Parallelism int
}

// Janitor runs the retention workflows.
type Janitor struct {
	broker   Broker
	library  Library
	notifier notify.Notifier
	ledger   *ledger.Store
	cfg      Config
	log      *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Janitor over its collaborators.
func New(broker Broker, library Library, notifier notify.Notifier, store *ledger.Store, cfg Config, log *slog.Logger) *Janitor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &Janitor{
		broker:   broker,
		library:  library,
		notifier: notifier,
		ledger:   store,
		cfg:      cfg,
		log:      log.With("component", "janitor"),
		now:      time.Now,
	}
}
