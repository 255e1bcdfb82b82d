// Package ledger persists the durable at-most-once state: which
// requests have been reminded about and which have been granted a
// retention extension. Everything else the system works with is
// recomputed from upstream on every run.
package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Store provides access to the reminder and extension ledgers.
type Store struct {
	db *sql.DB
}

// NewStore creates a ledger store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AddReminder records that a reminder was sent for a request. The
// insert is conflict-is-success: it returns true when this call created
// the record and false when one already existed, so two overlapping
// runs can both call it and exactly one reminder is recorded.
func (s *Store) AddReminder(requestID, userID int64) (bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO reminders (request_id, user_id, sent_at)
		VALUES (?, ?, ?)
		ON CONFLICT (request_id) DO NOTHING`,
		requestID, userID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert reminder %d: %w", requestID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert reminder %d: %w", requestID, err)
	}
	return n > 0, nil
}

// HasReminder reports whether a reminder has ever been sent for a request.
func (s *Store) HasReminder(requestID int64) (bool, error) {
	return s.exists("reminders", requestID)
}

// ReminderSet returns the subset of ids that have a reminder record.
func (s *Store) ReminderSet(ids []int64) (map[int64]bool, error) {
	return s.idSet("reminders", ids)
}

// Extend grants a one-time retention extension for a request. Same
// conflict-is-success contract as AddReminder: true on first grant,
// false ever after, and the original record is never overwritten.
func (s *Store) Extend(requestID, userID int64) (bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO extensions (request_id, extended_by, extended_at)
		VALUES (?, ?, ?)
		ON CONFLICT (request_id) DO NOTHING`,
		requestID, userID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert extension %d: %w", requestID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert extension %d: %w", requestID, err)
	}
	return n > 0, nil
}

// Extended reports whether a request has been granted an extension.
func (s *Store) Extended(requestID int64) (bool, error) {
	return s.exists("extensions", requestID)
}

// ExtendedSet returns the subset of ids that have an extension record.
func (s *Store) ExtendedSet(ids []int64) (map[int64]bool, error) {
	return s.idSet("extensions", ids)
}

func (s *Store) exists(table string, requestID int64) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM `+table+` WHERE request_id = ?`, requestID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s %d: %w", table, requestID, err)
	}
	return true, nil
}

func (s *Store) idSet(table string, ids []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return set, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		`SELECT request_id FROM `+table+` WHERE request_id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("lookup %s set: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", table, err)
		}
		set[id] = true
	}
	return set, rows.Err()
}
