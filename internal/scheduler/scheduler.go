package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/boardinghub/boardinghub/internal/billing"
)

// Scheduler runs the daily overdue sweep: pending bills past their due
// date are flipped to overdue so clients never have to derive the
// state at read time.
type Scheduler struct {
	cron  *cron.Cron
	bills *billing.Service
}

func New(bills *billing.Service) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		bills: bills,
	}
}

// Start registers the sweep at the given time of day (HH:MM) and
// starts the cron loop.
func (s *Scheduler) Start(sweepTime string) error {
	spec, err := parseTimeOfDay(sweepTime)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		n, err := s.bills.MarkOverdueBills(ctx)
		if err != nil {
			slog.Error("overdue sweep failed", "error", err)
			return
		}

		slog.Info("overdue sweep completed", "bills_marked", n)
	})
	if err != nil {
		return fmt.Errorf("scheduling overdue sweep: %w", err)
	}

	s.cron.Start()
	slog.Info("scheduler started", "sweep_time", sweepTime, "cron", spec)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// parseTimeOfDay converts "HH:MM" into a cron spec.
func parseTimeOfDay(s string) (string, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q: %w", s, err)
	}

	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
