package roles

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRepository decorates a RepositoryPort with a Redis read-through
// cache on name lookups. Staleness is bounded by the TTL; misses are
// never cached, so a role cannot be reported absent longer than the
// backing store says so, and an absent role is never fabricated.
type CachedRepository struct {
	inner  RepositoryPort
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRepository wraps inner with a Redis cache.
func NewCachedRepository(inner RepositoryPort, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{inner: inner, client: client, ttl: ttl}
}

func (c *CachedRepository) cacheKey(name string) string {
	return "role:" + name
}

// FindByName serves from cache when possible, falling back to the store.
// Cache errors degrade to a direct lookup.
func (c *CachedRepository) FindByName(ctx context.Context, name string) (*Role, error) {
	payload, err := c.client.Get(ctx, c.cacheKey(name)).Bytes()
	if err == nil {
		var role Role
		if err := json.Unmarshal(payload, &role); err == nil {
			return &role, nil
		}
	} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	role, err := c.inner.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(role); err == nil {
		_ = c.client.Set(ctx, c.cacheKey(name), data, c.ttl).Err()
	}
	return role, nil
}

// ListRoles always hits the backing store.
func (c *CachedRepository) ListRoles(ctx context.Context) ([]Role, error) {
	return c.inner.ListRoles(ctx)
}

// Ensure writes through and drops the cached entry.
func (c *CachedRepository) Ensure(ctx context.Context, name string, permissions []string) error {
	if err := c.inner.Ensure(ctx, name, permissions); err != nil {
		return err
	}
	_ = c.client.Del(ctx, c.cacheKey(name)).Err()
	return nil
}

var _ RepositoryPort = (*CachedRepository)(nil)
