package janitor

import (
	"context"
	"fmt"
)

// Notice is one reminder or deletion performed during a run.
type Notice struct {
	RequestID int64  `json:"request_id"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	DaysLeft  int    `json:"days_left,omitempty"`
}

// Summary reports the work a Process run performed. It is for
// observability, not a control signal: per-item failures are logged and
// counted, not listed.
type Summary struct {
	Checked   int      `json:"checked"`
	Reminders []Notice `json:"reminders"`
	Deletions []Notice `json:"deletions"`
	Failures  int      `json:"failures"`
}

// Process runs a full reconciliation cycle: check, then remind and
// delete per the retention policy. Each item is handled independently;
// one item failing never stops the batch. Ledger failures do abort the
// run, since continuing without durable at-most-once state could spam
// reminders or grant extensions twice.
func (j *Janitor) Process(ctx context.Context) (*Summary, error) {
	items, err := j.Check(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Checked:   len(items),
		Reminders: []Notice{},
		Deletions: []Notice{},
	}

	for _, item := range items {
		if item.Decision.Remind && !item.Reminded {
			if err := j.remind(ctx, item, summary); err != nil {
				return summary, err
			}
		}
		if item.Decision.Delete {
			j.remove(ctx, item, summary)
		}
	}

	j.log.Info("process run complete",
		"checked", summary.Checked,
		"reminders", len(summary.Reminders),
		"deletions", len(summary.Deletions),
		"failures", summary.Failures)
	return summary, nil
}

// remind sends the reminder, then records it. Send-before-record means
// a crash in between re-sends on the next run; a duplicate reminder is
// acceptable, a missing one is not. Only ledger errors are returned.
func (j *Janitor) remind(ctx context.Context, item Item, summary *Summary) error {
	req := item.Request
	if err := j.notifier.SendReminder(ctx, req.RequestedBy.Email, item.Media, item.Decision.DaysLeft); err != nil {
		j.log.Error("reminder send failed",
			"request_id", req.ID,
			"title", item.Media.Title,
			"error", err)
		summary.Failures++
		return nil
	}

	if _, err := j.ledger.AddReminder(req.ID, req.RequestedBy.ID); err != nil {
		return fmt.Errorf("record reminder for request %d: %w", req.ID, err)
	}

	j.log.Info("reminder sent",
		"request_id", req.ID,
		"title", item.Media.Title,
		"days_left", item.Decision.DaysLeft)
	summary.Reminders = append(summary.Reminders, Notice{
		RequestID: req.ID,
		Title:     item.Media.Title,
		Email:     req.RequestedBy.Email,
		DaysLeft:  item.Decision.DaysLeft,
	})
	return nil
}

// remove runs the deletion coordinator for one item, isolating failure.
func (j *Janitor) remove(ctx context.Context, item Item, summary *Summary) {
	req := item.Request
	if err := j.delete(ctx, item); err != nil {
		j.log.Error("deletion failed",
			"request_id", req.ID,
			"title", item.Media.Title,
			"error", err)
		summary.Failures++
		return
	}

	j.log.Info("media deleted",
		"request_id", req.ID,
		"title", item.Media.Title,
		"size_on_disk", item.Media.SizeOnDisk)
	summary.Deletions = append(summary.Deletions, Notice{
		RequestID: req.ID,
		Title:     item.Media.Title,
		Email:     req.RequestedBy.Email,
	})
}
