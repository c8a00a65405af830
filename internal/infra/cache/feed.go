package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const PublicFeedKey = "barbemnt:feed:public"

func TeamFeedKey(teamID uint) string {
	return fmt.Sprintf("barbemnt:feed:team:%d", teamID)
}

// FeedCache stores rendered feeds as JSON. A zero FeedCache is a disabled
// cache: reads always miss and writes are no-ops.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(url string, ttl time.Duration) (*FeedCache, error) {
	if url == "" {
		return &FeedCache{}, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &FeedCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *FeedCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *FeedCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get decodes the cached value into dst and reports whether it was present.
func (c *FeedCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *FeedCache) Set(ctx context.Context, key string, v any) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *FeedCache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *FeedCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
