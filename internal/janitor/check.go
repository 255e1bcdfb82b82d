package janitor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/janitarr/internal/media"
	"github.com/vmunix/janitarr/internal/retention"
	"github.com/vmunix/janitarr/pkg/overseerr"
)

// Item is one checked request: the broker's request, its resolved
// availability snapshot, and the retention decision for it.
type Item struct {
	Request  overseerr.Request  `json:"request"`
	Media    *media.Info        `json:"media"`
	Decision retention.Decision `json:"decision"`
	Extended bool               `json:"extended"`
	Reminded bool               `json:"reminded"`
}

// Check pulls every request from the broker, resolves availability for
// the ones whose media should have files, and returns only the items
// that actually do. A library manager failing for one item does not
// abort the scan; that item is treated as unavailable and logged.
func (j *Janitor) Check(ctx context.Context) ([]Item, error) {
	requests, err := j.broker.AllRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch requests: %w", err)
	}

	var candidates []overseerr.Request
	for _, req := range requests {
		if req.Media.Status.HasFiles() {
			candidates = append(candidates, req)
		}
	}
	j.log.Debug("checking requests", "total", len(requests), "candidates", len(candidates))

	// Resolve snapshots with bounded parallelism, keeping broker order.
	snapshots := make([]*media.Info, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.cfg.Parallelism)
	for i, req := range candidates {
		g.Go(func() error {
			info, err := j.resolve(gctx, req)
			if err != nil {
				// Unreachable manager isolates to this item.
				j.log.Error("snapshot resolution failed",
					"request_id", req.ID,
					"media_type", req.Type,
					"error", err)
				return nil
			}
			snapshots[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var available []Item
	for i, req := range candidates {
		if snapshots[i] == nil || !snapshots[i].Available {
			continue
		}
		available = append(available, Item{Request: req, Media: snapshots[i]})
	}

	if err := j.decide(available); err != nil {
		return nil, err
	}
	return available, nil
}

// resolve maps one request to its availability snapshot.
func (j *Janitor) resolve(ctx context.Context, req overseerr.Request) (*media.Info, error) {
	t, err := media.ParseType(req.Type)
	if err != nil {
		return nil, err
	}
	return j.library.GetMedia(ctx, t, req.Media.ExternalServiceID, req.SeasonNumbers())
}

// decide fills in retention decisions and ledger state for all items
// using one bulk lookup per ledger.
func (j *Janitor) decide(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.Request.ID
	}

	extended, err := j.ledger.ExtendedSet(ids)
	if err != nil {
		return fmt.Errorf("extension ledger: %w", err)
	}
	reminded, err := j.ledger.ReminderSet(ids)
	if err != nil {
		return fmt.Errorf("reminder ledger: %w", err)
	}

	now := j.now()
	for i := range items {
		item := &items[i]
		item.Extended = extended[item.Request.ID]
		item.Reminded = reminded[item.Request.ID]

		extensionDays := 0
		if item.Extended {
			extensionDays = j.cfg.ExtensionDays
		}
		item.Decision = j.cfg.Policy.Evaluate(item.Media, extensionDays, now)
	}
	return nil
}
