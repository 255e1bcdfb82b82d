package janitor

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"

	"github.com/vmunix/janitarr/internal/janitor/mocks"
	"github.com/vmunix/janitarr/internal/ledger"
	"github.com/vmunix/janitarr/internal/media"
	"github.com/vmunix/janitarr/internal/migrations"
	"github.com/vmunix/janitarr/internal/retention"
	"github.com/vmunix/janitarr/pkg/overseerr"
)

// testNow is the fixed clock all janitor tests run against.
var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// newClosedStore returns a ledger whose database is already closed, so
// every call fails.
func newClosedStore(t *testing.T) *ledger.Store {
	t.Helper()
	db := setupTestDB(t)
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	return ledger.NewStore(db)
}

// fakeNotifier records notices and can be told to fail sends.
type fakeNotifier struct {
	mu        sync.Mutex
	sendErr   error
	reminders []string
	deletions []string
}

func (f *fakeNotifier) SendReminder(_ context.Context, email string, _ *media.Info, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.reminders = append(f.reminders, email)
	return nil
}

func (f *fakeNotifier) SendDeletion(_ context.Context, email string, _ *media.Info) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.deletions = append(f.deletions, email)
	return nil
}

type testFixture struct {
	janitor  *Janitor
	broker   *mocks.MockBroker
	library  *mocks.MockLibrary
	notifier *fakeNotifier
	store    *ledger.Store
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockBroker(ctrl)
	library := mocks.NewMockLibrary(ctrl)
	notifier := &fakeNotifier{}
	store := ledger.NewStore(setupTestDB(t))

	cfg := Config{
		Policy:        retention.Policy{RetentionDays: 30, ReminderDays: 7},
		ExtensionDays: 14,
		Parallelism:   1,
	}
	j := New(broker, library, notifier, store, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	j.now = func() time.Time { return testNow }

	return &testFixture{janitor: j, broker: broker, library: library, notifier: notifier, store: store}
}

func movieRequest(id, radarrID int64) overseerr.Request {
	return overseerr.Request{
		ID:     id,
		Status: overseerr.RequestStatusApproved,
		Type:   "movie",
		Media: overseerr.Media{
			ID:                id * 100,
			Status:            overseerr.MediaStatusAvailable,
			ExternalServiceID: radarrID,
		},
		RequestedBy: overseerr.User{ID: 7, Email: "viewer@example.com"},
	}
}

func movieInfo(radarrID int64, title string, ageDays int) *media.Info {
	since := testNow.AddDate(0, 0, -ageDays)
	return &media.Info{
		ID:             radarrID,
		Title:          title,
		Available:      true,
		AvailableSince: &since,
		SizeOnDisk:     1_000_000,
	}
}
