// Package notify delivers reminder and deletion notices to requesters.
package notify

import (
	"context"
	"log/slog"

	"github.com/vmunix/janitarr/internal/media"
)

// Notifier sends retention notices. Delivery is at-least-once; the
// reminder ledger, not the notifier, enforces at-most-once recording.
type Notifier interface {
	// SendReminder tells the requester their media will be removed in
	// daysLeft days.
	SendReminder(ctx context.Context, email string, info *media.Info, daysLeft int) error
	// SendDeletion tells the requester their media has been removed.
	SendDeletion(ctx context.Context, email string, info *media.Info) error
}

// LogNotifier writes notices to the log instead of delivering them.
// Used when no SMTP server is configured.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log.With("component", "notify")}
}

func (n *LogNotifier) SendReminder(_ context.Context, email string, info *media.Info, daysLeft int) error {
	n.log.Info("reminder notice (smtp not configured)",
		"email", email,
		"title", info.Title,
		"days_left", daysLeft)
	return nil
}

func (n *LogNotifier) SendDeletion(_ context.Context, email string, info *media.Info) error {
	n.log.Info("deletion notice (smtp not configured)",
		"email", email,
		"title", info.Title)
	return nil
}
