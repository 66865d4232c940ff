package question

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizzical/quizzical-api/internal/pagination"
)

const defaultCacheTTL = 5 * time.Minute

// Cache provides Redis-backed question page caching to offload repeated
// list queries. Keys embed a per-category version counter; bumping the
// counter on a write orphans every cached page of that category at once,
// without key scans. Orphaned entries age out through the TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ PageCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) versionKey(category string) string {
	return "questions:version:" + category
}

func (c *Cache) pageKey(ctx context.Context, category string, page, size int) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey(category)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("questions:%s:v%d:%d:%d", category, version, page, size), nil
}

// GetPage returns a cached page, or nil on a miss.
func (c *Cache) GetPage(ctx context.Context, category string, page, size int) (*pagination.Page[Question], error) {
	key, err := c.pageKey(ctx, category, page, size)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var cached pagination.Page[Question]
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// SetPage stores a page under the category's current version.
func (c *Cache) SetPage(ctx context.Context, category string, page, size int, p pagination.Page[Question]) error {
	key, err := c.pageKey(ctx, category, page, size)
	if err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate bumps the category's version so cached pages stop matching.
func (c *Cache) Invalidate(ctx context.Context, category string) error {
	return c.client.Incr(ctx, c.versionKey(category)).Err()
}
