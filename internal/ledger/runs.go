package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run kinds and triggers.
const (
	RunKindCheck   = "check"
	RunKindProcess = "process"

	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// Run is one recorded check or process cycle.
type Run struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Trigger    string     `json:"trigger"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Checked    int        `json:"checked"`
	Reminders  int        `json:"reminders"`
	Deletions  int        `json:"deletions"`
	Failures   int        `json:"failures"`
	Error      string     `json:"error,omitempty"`
}

// StartRun records the beginning of a cycle and returns the new Run.
func (s *Store) StartRun(kind, trigger string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, kind, trigger, started_at)
		VALUES (?, ?, ?, ?)`,
		run.ID, run.Kind, run.Trigger, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun writes the run's final counts and error text.
func (s *Store) FinishRun(run *Run) error {
	now := time.Now().UTC()
	run.FinishedAt = &now
	_, err := s.db.Exec(`
		UPDATE runs
		SET finished_at = ?, checked = ?, reminders = ?, deletions = ?, failures = ?, error = ?
		WHERE id = ?`,
		now, run.Checked, run.Reminders, run.Deletions, run.Failures, run.Error, run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, kind, trigger, started_at, finished_at, checked, reminders, deletions, failures, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var finished sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.Kind, &run.Trigger, &run.StartedAt, &finished,
			&run.Checked, &run.Reminders, &run.Deletions, &run.Failures, &run.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
