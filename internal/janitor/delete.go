package janitor

import (
	"context"
	"fmt"

	"github.com/vmunix/janitarr/internal/media"
)

// delete removes one item's media, strictly ordered: library-manager
// files first, broker records second, deletion notice last. The notice
// must never go out for media that is still on disk, and the broker
// must keep its record until the files are confirmed gone.
func (j *Janitor) delete(ctx context.Context, item Item) error {
	req := item.Request
	t, err := media.ParseType(req.Type)
	if err != nil {
		return err
	}

	if err := j.library.DeleteMedia(ctx, t, req.Media.ExternalServiceID, req.SeasonNumbers()); err != nil {
		return fmt.Errorf("delete media files: %w", err)
	}

	if err := j.broker.DeleteRequest(ctx, req.ID); err != nil {
		return fmt.Errorf("%w: files deleted but request %d remains: %v", ErrInconsistent, req.ID, err)
	}
	if err := j.broker.DeleteMedia(ctx, req.Media.ID); err != nil {
		return fmt.Errorf("%w: files deleted but media record %d remains: %v", ErrInconsistent, req.Media.ID, err)
	}

	// Files and records are gone; a failed notice is only logged.
	if err := j.notifier.SendDeletion(ctx, req.RequestedBy.Email, item.Media); err != nil {
		j.log.Error("deletion notice failed",
			"request_id", req.ID,
			"email", req.RequestedBy.Email,
			"error", err)
	}
	return nil
}
