package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// publicViewTTL bounds staleness for entries that are never invalidated
// (Respond deletes its entry explicitly; this covers everything else).
const publicViewTTL = 5 * time.Minute

// ErrCacheMiss is returned when no cached public view exists for an id
var ErrCacheMiss = errors.New("public view not cached")

// Cache is the read-through cache the service consults before Postgres
type Cache interface {
	GetPublicView(ctx context.Context, id string) (*PublicView, error)
	SetPublicView(ctx context.Context, view *PublicView) error
	DeletePublicView(ctx context.Context, id string) error
}

// RedisCache stores public request views in Redis
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// publicViewKey generates the Redis key for a cached public view
func publicViewKey(id string) string {
	return fmt.Sprintf("valentine:public:%s", id)
}

// GetPublicView returns the cached view for an id, or ErrCacheMiss
func (c *RedisCache) GetPublicView(ctx context.Context, id string) (*PublicView, error) {
	data, err := c.client.Get(ctx, publicViewKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached public view: %w", err)
	}

	var view PublicView
	if err := json.Unmarshal(data, &view); err != nil {
		// Treat a corrupt entry as a miss; it will be rewritten
		return nil, ErrCacheMiss
	}

	return &view, nil
}

// SetPublicView caches a view with the standard TTL
func (c *RedisCache) SetPublicView(ctx context.Context, view *PublicView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal public view: %w", err)
	}

	if err := c.client.Set(ctx, publicViewKey(view.ID), data, publicViewTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache public view: %w", err)
	}

	return nil
}

// DeletePublicView drops the cached view so the next read sees the
// freshly recorded response.
func (c *RedisCache) DeletePublicView(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, publicViewKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached public view: %w", err)
	}
	return nil
}
