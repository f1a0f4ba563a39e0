package cron

import (
	"context"
	"log/slog"
	"time"
)

// Pruner drops entries that have been idle too long and reports how many.
type Pruner interface {
	Prune() int
}

// RegisterPruneJob schedules p.Prune every interval.
func RegisterPruneJob(s *Scheduler, name string, interval time.Duration, p Pruner) {
	s.AddJob(name, interval, func(ctx context.Context) error {
		if removed := p.Prune(); removed > 0 {
			slog.Debug("Pruned idle entries", "job", name, "removed", removed)
		}
		return nil
	})
}
