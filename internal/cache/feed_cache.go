package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"smart-campus/internal/model"
)

// FeedCache holds the sorted notice feed per role. Publishing a notice marks
// the affected roles dirty and drops their cached feeds; the dirty marker
// keeps a concurrent reader from re-seeding the cache with a stale feed
// while the write settles.
type FeedCache struct {
	client         *redisv9.Client
	feedTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewFeedCache(client *redisv9.Client, feedTTL, dirtyMarkerTTL time.Duration) *FeedCache {
	if feedTTL <= 0 {
		feedTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &FeedCache{
		client:         client,
		feedTTL:        feedTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *FeedCache) GetFeed(ctx context.Context, role string) ([]model.Notice, bool, error) {
	key := c.feedKey(role)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get feed failed: %w", err)
	}

	var notices []model.Notice
	if err := json.Unmarshal([]byte(raw), &notices); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached feed failed: %w", err)
	}
	return notices, true, nil
}

func (c *FeedCache) SetFeed(ctx context.Context, role string, notices []model.Notice) error {
	key := c.feedKey(role)
	payload, err := json.Marshal(notices)
	if err != nil {
		return fmt.Errorf("marshal feed cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.feedTTL).Err(); err != nil {
		return fmt.Errorf("redis set feed failed: %w", err)
	}
	return nil
}

func (c *FeedCache) DeleteFeed(ctx context.Context, roles ...string) error {
	keys := make([]string, 0, len(roles))
	for _, role := range roles {
		keys = append(keys, c.feedKey(role))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete feed failed: %w", err)
	}
	return nil
}

func (c *FeedCache) MarkDirty(ctx context.Context, roles ...string) error {
	for _, role := range roles {
		if err := c.client.Set(ctx, c.dirtyKey(role), "1", c.dirtyMarkerTTL).Err(); err != nil {
			return fmt.Errorf("redis set dirty marker failed: %w", err)
		}
	}
	return nil
}

func (c *FeedCache) IsDirty(ctx context.Context, role string) (bool, error) {
	exists, err := c.client.Exists(ctx, c.dirtyKey(role)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *FeedCache) feedKey(role string) string {
	return fmt.Sprintf("notice:feed:%s", role)
}

func (c *FeedCache) dirtyKey(role string) string {
	return fmt.Sprintf("notice:feed:dirty:%s", role)
}
