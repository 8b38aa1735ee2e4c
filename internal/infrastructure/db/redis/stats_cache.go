package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chamathdew/hiruayurvedaresorts/internal/api/metrics"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
)

const statsTTL = 30 * time.Second

// StatsCache caches the dashboard aggregate per visibility scope.
// Key format: stats:<branch> (stats:all for the unscoped view).
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats for a scope, or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context, scope string) (*ports.GuestStats, error) {
	raw, err := c.client.Get(ctx, c.key(scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.GuestStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, nil
}

// Set stores the stats for a scope (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, scope string, stats *ports.GuestStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(scope), raw, statsTTL).Err()
}

// Invalidate drops the cached entries a write to branch could have staled:
// the branch's own scope and the unscoped view.
func (c *StatsCache) Invalidate(ctx context.Context, branch string) error {
	return c.client.Del(ctx, c.key(branch), c.key("")).Err()
}

func (c *StatsCache) key(scope string) string {
	if scope == "" {
		scope = "all"
	}
	return "stats:" + scope
}
