// Package cache provides an explicit, injectable read cache for catalog
// responses. Invalidation happens only at mutation points, by bumping a
// version key that prefixes every list entry.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productKeyPrefix = "product:detail:"
	listKeyPrefix    = "products:v:"
	versionKey       = "products:version"

	// DefaultTTL bounds staleness even if an invalidation is missed.
	DefaultTTL = 10 * time.Minute
)

// ProductCache defines the interface for the catalog read cache. The service
// layer takes this so callers decide whether reads go through Redis or
// nothing at all.
type ProductCache interface {
	GetList(ctx context.Context, page, limit int, filterKey string) ([]models.ProductResponse, int64, bool)
	SetList(ctx context.Context, page, limit int, filterKey string, products []models.ProductResponse, total int64)
	GetProduct(ctx context.Context, id string) (*models.ProductResponse, bool)
	SetProduct(ctx context.Context, p models.ProductResponse)
	Invalidate(ctx context.Context)
	InvalidateProduct(ctx context.Context, id string)
}

// RedisProductCache caches product reads in Redis.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache creates a RedisProductCache with the default TTL.
func NewProductCache(client *redis.Client, logger *zap.Logger) ProductCache {
	return &RedisProductCache{client: client, ttl: DefaultTTL, logger: logger}
}

func (c *RedisProductCache) version(ctx context.Context) int64 {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *RedisProductCache) listKey(version int64, page, limit int, filterKey string) string {
	return fmt.Sprintf("%s%d:p%d:l%d:%s", listKeyPrefix, version, page, limit, filterKey)
}

// GetList returns a cached product listing, if present for the current
// version.
func (c *RedisProductCache) GetList(ctx context.Context, page, limit int, filterKey string) ([]models.ProductResponse, int64, bool) {
	version := c.version(ctx)
	if version == 0 {
		return nil, 0, false
	}

	data, err := c.client.Get(ctx, c.listKey(version, page, limit, filterKey)).Result()
	if err != nil {
		return nil, 0, false
	}

	var entry struct {
		Products []models.ProductResponse `json:"products"`
		Total    int64                    `json:"total"`
	}
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		c.logger.Warn("failed to unmarshal cached product list", zap.Error(err))
		return nil, 0, false
	}
	return entry.Products, entry.Total, true
}

// SetList caches a product listing under the current version.
func (c *RedisProductCache) SetList(ctx context.Context, page, limit int, filterKey string, products []models.ProductResponse, total int64) {
	version := c.version(ctx)
	if version == 0 {
		// First write establishes version 1 so subsequent reads can hit.
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return
		}
		version = c.version(ctx)
		if version == 0 {
			return
		}
	}

	entry := struct {
		Products []models.ProductResponse `json:"products"`
		Total    int64                    `json:"total"`
	}{Products: products, Total: total}

	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("failed to marshal product list for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.listKey(version, page, limit, filterKey), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache product list", zap.Error(err))
	}
}

// GetProduct returns a cached single product.
func (c *RedisProductCache) GetProduct(ctx context.Context, id string) (*models.ProductResponse, bool) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Result()
	if err != nil {
		return nil, false
	}

	var p models.ProductResponse
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, false
	}
	return &p, true
}

// SetProduct caches a single product.
func (c *RedisProductCache) SetProduct(ctx context.Context, p models.ProductResponse) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("failed to marshal product for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+p.ID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache product", zap.Error(err), zap.String("product_id", p.ID.String()))
	}
}

// Invalidate marks every cached listing stale by bumping the version key.
// Called on each catalog mutation.
func (c *RedisProductCache) Invalidate(ctx context.Context) {
	newVersion, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		c.logger.Error("failed to invalidate product cache", zap.Error(err))
		return
	}
	c.logger.Info("product cache invalidated", zap.Int64("version", newVersion))
}

// InvalidateProduct drops one detail entry and marks listings stale.
func (c *RedisProductCache) InvalidateProduct(ctx context.Context, id string) {
	c.Invalidate(ctx)
	if err := c.client.Del(ctx, productKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("failed to drop product cache entry", zap.Error(err), zap.String("product_id", id))
	}
}
