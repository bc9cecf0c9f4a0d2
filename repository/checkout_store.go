package repository

import (
	"context"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutStore commits an order and, when a discount code was applied,
// consumes one use of it in the same transaction. Either both writes land or
// neither does, so abandoned or raced checkouts never inflate uses_count.
type CheckoutStore interface {
	PlaceOrder(ctx context.Context, order *models.Order, discountID *uuid.UUID) error
}

// GormCheckoutStore implements CheckoutStore using GORM transactions.
type GormCheckoutStore struct {
	db        *gorm.DB
	discounts *GormDiscountRepository
}

// NewGormCheckoutStore creates a new GormCheckoutStore.
func NewGormCheckoutStore(db *gorm.DB) CheckoutStore {
	return &GormCheckoutStore{db: db, discounts: &GormDiscountRepository{db: db}}
}

// PlaceOrder runs the conditional redemption before the order insert; if the
// code ran out between validation and commit the whole checkout rolls back
// with ErrUsageExhausted.
func (s *GormCheckoutStore) PlaceOrder(ctx context.Context, order *models.Order, discountID *uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if discountID != nil {
			if err := s.discounts.WithTx(tx).Redeem(ctx, *discountID); err != nil {
				return err
			}
		}
		return tx.Create(order).Error
	})
}
