// Package cache holds the redis read cache for tracking-mirror queries.
// It only ever shadows committed store state; ledger writes invalidate it
// best-effort and entries expire on a short TTL either way.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rigpark/escrow-service/internal/domain"
)

// Connect initializes a Redis client from URL or host:port input.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

type RedisMirrorCache struct {
	client *redis.Client
}

func NewRedisMirrorCache(client *redis.Client) *RedisMirrorCache {
	return &RedisMirrorCache{client: client}
}

func key(transactionID string) string {
	return "escrow:mirror:" + transactionID
}

func (c *RedisMirrorCache) Get(ctx context.Context, transactionID string) (*domain.TrackingRecord, error) {
	raw, err := c.client.Get(ctx, key(transactionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec domain.TrackingRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

func (c *RedisMirrorCache) Set(ctx context.Context, rec domain.TrackingRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(rec.TransactionID), raw, ttl).Err()
}

func (c *RedisMirrorCache) Invalidate(ctx context.Context, transactionID string) error {
	return c.client.Del(ctx, key(transactionID)).Err()
}
