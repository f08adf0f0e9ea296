package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderboardCacheKey = "firstaid:leaderboard"

// LeaderboardCache holds the ranked list between submissions.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]LeaderboardEntry, bool, error)
	Set(ctx context.Context, entries []LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type RedisLeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLeaderboardCache(rdb *redis.Client, ttl time.Duration) *RedisLeaderboardCache {
	return &RedisLeaderboardCache{rdb: rdb, ttl: ttl}
}

func (c *RedisLeaderboardCache) Get(ctx context.Context) ([]LeaderboardEntry, bool, error) {
	data, err := c.rdb.Get(ctx, leaderboardCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *RedisLeaderboardCache) Set(ctx context.Context, entries []LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, leaderboardCacheKey, data, c.ttl).Err()
}

func (c *RedisLeaderboardCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, leaderboardCacheKey).Err()
}

// NoopLeaderboardCache is used when Redis is disabled.
type NoopLeaderboardCache struct{}

func (NoopLeaderboardCache) Get(context.Context) ([]LeaderboardEntry, bool, error) {
	return nil, false, nil
}

func (NoopLeaderboardCache) Set(context.Context, []LeaderboardEntry) error { return nil }

func (NoopLeaderboardCache) Invalidate(context.Context) error { return nil }
