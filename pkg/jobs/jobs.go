// Package jobs runs the periodic maintenance of the portal: pruning old
// plan history and expired news, then refreshing the news feed.
package jobs

import (
	"context"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// NewsSyncer fetches fresh news. *news.Syncer satisfies it.
type NewsSyncer interface {
	Sync(ctx context.Context) (int, error)
}

type Cleanup struct {
	Plans     store.PlansStore
	News      store.NewsStore
	Syncer    NewsSyncer
	Retention time.Duration
	Interval  time.Duration
	Log       *logger.Logger

	now func() time.Time
}

// Result reports what a single pass changed.
type Result struct {
	PlansDeleted int64
	NewsDeleted  int64
	NewsInserted int
}

func (c *Cleanup) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// RunOnce performs one maintenance pass. Every step runs even when an
// earlier one fails; failures are logged and the first one is returned.
func (c *Cleanup) RunOnce(ctx context.Context) (Result, error) {
	var (
		res      Result
		firstErr error
	)
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	now := c.clock().UTC()

	if c.Plans != nil && c.Retention > 0 {
		n, err := c.Plans.DeleteOlderThan(now.Add(-c.Retention))
		if err != nil {
			c.Log.Error("failed to prune plan history", "error", err)
			keep(err)
		} else {
			res.PlansDeleted = n
		}
	}

	if c.News != nil {
		n, err := c.News.DeleteExpired(now)
		if err != nil {
			c.Log.Error("failed to delete expired news", "error", err)
			keep(err)
		} else {
			res.NewsDeleted = n
		}
	}

	if c.Syncer != nil {
		n, err := c.Syncer.Sync(ctx)
		if err != nil {
			c.Log.Warn("news sync failed", "error", err)
			keep(err)
		} else {
			res.NewsInserted = n
		}
	}

	c.Log.Info("maintenance pass finished",
		"plans_deleted", res.PlansDeleted,
		"news_deleted", res.NewsDeleted,
		"news_inserted", res.NewsInserted)
	return res, firstErr
}

// Run executes a pass immediately and then every Interval until ctx is
// cancelled.
func (c *Cleanup) Run(ctx context.Context) {
	interval := c.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	_, _ = c.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.Log.Info("maintenance loop stopped")
			return
		case <-ticker.C:
			_, _ = c.RunOnce(ctx)
		}
	}
}
