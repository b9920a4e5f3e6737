package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Scheduler re-runs the pipeline on a fixed interval so a changing source
// (an updated CSV file) is picked up without a restart.
type Scheduler struct {
	interval  time.Duration
	processor *Processor
	logger    *slog.Logger
}

func NewScheduler(interval time.Duration, processor *Processor, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{interval: interval, processor: processor, logger: logger}
}

// Start runs until ctx is cancelled. A non-positive interval disables refreshes.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("[Scheduler] Refresh disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("[Scheduler] Starting pipeline refresh", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-ctx.Done():
			s.logger.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	res, err := s.processor.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error("[Scheduler] Refresh failed, keeping previous results", "error", err)
		return
	}
	s.logger.Info("[Scheduler] Refresh complete", "run_id", res.RunID, "growth_rows", len(res.Growth))
}
