package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/vmunix/janitarr/internal/ledger"
)

// Scheduler runs the process workflow on a cron schedule.
type Scheduler struct {
	server   *Server
	schedule string
	cron     *cron.Cron
	log      *slog.Logger
}

// NewScheduler creates a scheduler over the server's run entry point.
// An empty schedule disables it.
func NewScheduler(server *Server, schedule string, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		server:   server,
		schedule: schedule,
		cron:     cron.New(),
		log:      log.With("component", "scheduler"),
	}
}

// Start begins scheduled processing. It returns immediately; the cron
// runner stops when ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.log.Info("retention schedule not configured, scheduler disabled")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule processing: %w", err)
	}

	s.cron.Start()
	s.log.Info("retention scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.log.Info("starting scheduled retention run")

	summary, err := s.server.RunProcess(ctx, ledger.TriggerScheduled)
	if err != nil {
		if errors.Is(err, errRunInProgress) {
			s.log.Warn("skipping scheduled run, another run is in progress")
			return
		}
		s.log.Error("scheduled run failed", "error", err)
		return
	}

	s.log.Info("scheduled run complete",
		"checked", summary.Checked,
		"reminders", len(summary.Reminders),
		"deletions", len(summary.Deletions),
		"failures", summary.Failures)
}
