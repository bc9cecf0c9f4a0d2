package cache

import (
	"context"

	"github.com/YodHeVauHe/ShopWithKylie/models"
)

// NoopProductCache misses every read and swallows every write. Used when
// Redis is unavailable and in tests.
type NoopProductCache struct{}

func (NoopProductCache) GetList(context.Context, int, int, string) ([]models.ProductResponse, int64, bool) {
	return nil, 0, false
}

func (NoopProductCache) SetList(context.Context, int, int, string, []models.ProductResponse, int64) {
}

func (NoopProductCache) GetProduct(context.Context, string) (*models.ProductResponse, bool) {
	return nil, false
}

func (NoopProductCache) SetProduct(context.Context, models.ProductResponse) {}

func (NoopProductCache) Invalidate(context.Context) {}

func (NoopProductCache) InvalidateProduct(context.Context, string) {}
