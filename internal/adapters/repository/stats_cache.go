package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// statsTTL keeps cached dashboard counts short-lived; every task mutation
// invalidates the affected users anyway, the TTL only bounds staleness when
// an invalidation is lost.
const statsTTL = 30 * time.Second

// RedisStatsCache is a cache-aside store for per-user dashboard statistics.
// Cache failures are logged and treated as misses, never surfaced.
type RedisStatsCache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisStatsCache creates a stats cache backed by the given Redis client.
func NewRedisStatsCache(client *redis.Client, logger *logger.Logger) ports.StatsCache {
	return &RedisStatsCache{client: client, logger: logger}
}

func (c *RedisStatsCache) Get(ctx context.Context, userID uuid.UUID) (*entities.DashboardStats, bool) {
	data, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("Stats cache read failed", "error", err, "user_id", userID)
		}
		return nil, false
	}

	var stats entities.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Warnw("Stats cache entry corrupt", "error", err, "user_id", userID)
		return nil, false
	}

	return &stats, true
}

func (c *RedisStatsCache) Set(ctx context.Context, userID uuid.UUID, stats *entities.DashboardStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warnw("Stats cache marshal failed", "error", err, "user_id", userID)
		return
	}

	if err := c.client.Set(ctx, statsKey(userID), data, statsTTL).Err(); err != nil {
		c.logger.Warnw("Stats cache write failed", "error", err, "user_id", userID)
	}
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if len(userIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, statsKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("Stats cache invalidation failed", "error", err)
	}
}

func statsKey(userID uuid.UUID) string {
	return fmt.Sprintf("stats:%s", userID)
}
