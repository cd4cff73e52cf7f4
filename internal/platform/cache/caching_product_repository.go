// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
	"shop_backend/internal/platform/metrics"
)

// CachingProductRepository decorates a ProductRepository with Redis caching.
// Reads go through the cache and every successful write invalidates the whole namespace.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "products".
// A nil rdb disables caching entirely.
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the product and invalidates cached reads.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update overwrites the product and invalidates cached reads.
func (c *CachingProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes the product and invalidates cached reads.
func (c *CachingProductRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID returns a single product, checking the cache first.
func (c *CachingProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	key := c.namespace + ":id:" + safe(id)

	var cached entity.Product
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, p)
	return p, nil
}

// List returns all products, checking the cache first.
func (c *CachingProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	return c.list(ctx, c.namespace+":all", func() ([]entity.Product, error) {
		return c.inner.List(ctx)
	})
}

// ListByCategory returns products in a category, checking the cache first.
func (c *CachingProductRepository) ListByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	if c.rdb == nil {
		return c.inner.ListByCategory(ctx, category)
	}
	return c.list(ctx, c.namespace+":category:"+safe(category), func() ([]entity.Product, error) {
		return c.inner.ListByCategory(ctx, category)
	})
}

func (c *CachingProductRepository) list(ctx context.Context, key string, load func() ([]entity.Product, error)) ([]entity.Product, error) {
	var cached []entity.Product
	if c.get(ctx, key, &cached) {
		return cached, nil
	}
	out, err := load()
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// get reads key into dst. A corrupted entry is deleted and reported as a miss.
func (c *CachingProductRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		metrics.CacheMisses.WithLabelValues(c.namespace).Inc()
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		metrics.CacheMisses.WithLabelValues(c.namespace).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(c.namespace).Inc()
	return true
}

// set stores v under key (best effort).
func (c *CachingProductRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops every cached entry in the namespace (best effort).
func (c *CachingProductRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("product cache invalidation failed", "error", err, "namespace", c.namespace)
	}
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
// Escaping is reversible so distinct categories never share a key.
func safe(s string) string {
	return url.QueryEscape(s)
}
