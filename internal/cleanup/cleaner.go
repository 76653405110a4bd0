package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Store is the part of the session manager the cleaner needs
type Store interface {
	GetStale(ctx context.Context, retention time.Duration) ([]models.GameSummary, error)
	Delete(ctx context.Context, id string) error
}

// Cleaner periodically deletes games nobody has played for a while
type Cleaner struct {
	store     Store
	interval  time.Duration
	retention time.Duration
}

// NewCleaner creates a new cleanup worker. A zero retention disables it.
func NewCleaner(store Store, interval, retention time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Cleaner{
		store:     store,
		interval:  interval,
		retention: retention,
	}
}

// Enabled reports whether the worker has anything to do
func (c *Cleaner) Enabled() bool {
	return c.retention > 0
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	if !c.Enabled() {
		slog.Info("game cleanup disabled")
		return
	}
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "retention", c.retention)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

// Sweep deletes every stale game once and returns how many were removed
func (c *Cleaner) Sweep(ctx context.Context) int {
	if !c.Enabled() {
		return 0
	}
	slog.Debug("running cleanup cycle")

	stale, err := c.store.GetStale(ctx, c.retention)
	if err != nil {
		slog.Error("failed to get stale games", "error", err)
		return 0
	}

	if len(stale) == 0 {
		slog.Debug("no stale games found")
		return 0
	}

	slog.Info("found stale games", "count", len(stale))

	deleted := 0
	for _, g := range stale {
		if err := c.store.Delete(ctx, g.ID); err != nil {
			slog.Error("failed to delete stale game",
				"error", err,
				"game_id", g.ID,
			)
			continue
		}
		deleted++

		slog.Info("stale game deleted",
			"game_id", g.ID,
			"name", g.Name,
			"game_date", g.Date,
			"last_played", g.UpdatedAt,
		)
	}
	return deleted
}
