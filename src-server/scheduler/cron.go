package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Start runs a full cycle on the configured schedule. A tick that lands while
// a cycle is still running waits for it.
//
// The returned stop halts the schedule and blocks until no cycle is running,
// so callers must call it before the database closes. It is safe to call more
// than once.
func (r *Runner) Start() (stop func(), err error) {
	c := cron.New(cron.WithLocation(r.as.Config.GetLocation()))
	if _, err := c.AddFunc(r.as.Sources.Schedule, func() {
		if _, err := r.RunCycle(context.Background()); err != nil {
			slog.Error("scheduled scrape failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("(*Runner).Start: invalid schedule %q: %w", r.as.Sources.Schedule, err)
	}

	c.Start()
	slog.Info("scrape scheduler started", "schedule", r.as.Sources.Schedule)

	var once sync.Once
	return func() {
		once.Do(func() {
			<-c.Stop().Done()
			// a cycle started outside the schedule holds the lock too
			r.mu.Lock()
			r.mu.Unlock()
			slog.Debug("scrape scheduler stopped")
		})
	}, nil
}
