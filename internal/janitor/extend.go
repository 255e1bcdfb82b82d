package janitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/janitarr/pkg/overseerr"
)

// RequestExtension grants a one-time retention extension. It returns
// true when this call granted the extension and false when one was
// already on record; the original grant is never replaced, regardless
// of who asks. Unknown requests fail with ErrRequestNotFound, requests
// whose media has no files yet with ErrNotAvailable.
func (j *Janitor) RequestExtension(ctx context.Context, requestID, userID int64) (bool, error) {
	req, err := j.broker.Request(ctx, requestID)
	if err != nil {
		if errors.Is(err, overseerr.ErrNotFound) {
			return false, fmt.Errorf("%w: %d", ErrRequestNotFound, requestID)
		}
		return false, fmt.Errorf("fetch request %d: %w", requestID, err)
	}

	if !req.Media.Status.HasFiles() {
		return false, fmt.Errorf("%w: request %d cannot be extended", ErrNotAvailable, requestID)
	}

	granted, err := j.ledger.Extend(requestID, userID)
	if err != nil {
		return false, fmt.Errorf("record extension for request %d: %w", requestID, err)
	}
	if granted {
		j.log.Info("extension granted",
			"request_id", requestID,
			"user_id", userID,
			"extension_days", j.cfg.ExtensionDays)
	} else {
		j.log.Debug("extension already granted", "request_id", requestID)
	}
	return granted, nil
}
