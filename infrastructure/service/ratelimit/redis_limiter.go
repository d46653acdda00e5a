package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// RedisLimiter implements a fixed-window counter per key. INCR + EXPIRE on
// first hit; a window's counter disappears when the window ends.
type RedisLimiter struct {
	client *redis.Client
	log    logger.Logger
}

func NewRedisLimiter(redisURL string, log logger.Logger) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLimiter{client: client, log: log}, nil
}

// NewRedisLimiterWithClient wires an existing client, used by tests.
func NewRedisLimiterWithClient(client *redis.Client, log logger.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, log: log}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rkey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, rkey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rkey, window).Err(); err != nil {
			l.log.Error(ctx, "failed to set rate limit window", err, map[string]interface{}{
				"key": key,
			})
		}
	}

	if count > int64(limit) {
		l.log.Warn(ctx, "rate limit exceeded", map[string]interface{}{
			"key":   key,
			"count": count,
			"limit": limit,
		})
		return false, nil
	}
	return true, nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
