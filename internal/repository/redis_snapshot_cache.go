package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/morphofolio/backend/internal/model"
)

const snapshotKey = "folio:messages:snapshot"

// RedisSnapshotCache stores the last known message list as one JSON value.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Ensure RedisSnapshotCache implements SnapshotCache at compile time.
var _ SnapshotCache = (*RedisSnapshotCache)(nil)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisSnapshotCache creates a cache whose snapshots expire after ttl.
// A zero ttl keeps snapshots forever.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

// Save replaces the stored snapshot.
func (c *RedisSnapshotCache) Save(ctx context.Context, messages []model.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot.
func (c *RedisSnapshotCache) Load(ctx context.Context) ([]model.Message, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return messages, nil
}
