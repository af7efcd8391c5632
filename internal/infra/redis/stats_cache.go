package redis

import (
	"context"
	"encoding/json"
	"time"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
)

const statsKey = "stats:dashboard"

var _ repository.StatsCache = (*StatsCache)(nil)

// StatsCache keeps the dashboard aggregate as a JSON blob under a short TTL.
type StatsCache struct {
	cli RedisClient
	ttl time.Duration
}

func NewStatsCache(cli RedisClient, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsCache{cli: cli, ttl: ttl}
}

func (c *StatsCache) GetDashboard(ctx context.Context) (*model.DashboardStats, error) {
	raw, err := c.cli.Get(ctx, statsKey)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var stats model.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		// A corrupt blob behaves like a miss and gets overwritten.
		return nil, domain.ErrNotFound
	}
	return &stats, nil
}

func (c *StatsCache) SetDashboard(ctx context.Context, stats *model.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.cli.Set(ctx, statsKey, raw, c.ttl)
}
