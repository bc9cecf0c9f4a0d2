package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/redis/go-redis/v9"
)

// CartStore defines the interface for cart session storage.
type CartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// CartRepository stores carts in Redis keyed by user. Carts are session
// state; nothing is persisted to Postgres until checkout.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(client *redis.Client, ttl time.Duration) CartStore {
	return &CartRepository{client: client, ttl: ttl}
}

func (r *CartRepository) key(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Get retrieves a user's cart, or nil when none exists.
func (r *CartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save writes a cart back with a refreshed TTL.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(cart.UserID), data, r.ttl).Err()
}

// Delete removes a user's cart (after checkout or on explicit clear).
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}
