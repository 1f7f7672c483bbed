package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// UsagePruner deletes usage events older than a cutoff
type UsagePruner interface {
	PruneUsage(ctx context.Context, before time.Time) (int64, error)
}

// Cleaner handles periodic pruning of old usage events
type Cleaner struct {
	store     UsagePruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

// NewCleaner creates a new cleanup worker
func NewCleaner(store UsagePruner, retention, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &Cleaner{
		store:     store,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "retention", c.retention)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup removes usage events past the retention window
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	cutoff := c.now().UTC().Add(-c.retention)
	removed, err := c.store.PruneUsage(ctx, cutoff)
	if err != nil {
		slog.Error("failed to prune usage events", "error", err, "cutoff", cutoff)
		return
	}

	if removed == 0 {
		slog.Debug("no usage events to prune")
		return
	}

	slog.Info("pruned usage events", "count", removed, "cutoff", cutoff)
}
