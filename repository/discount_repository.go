package repository

import (
	"context"
	"errors"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUsageExhausted is returned when a conditional redemption finds no
// remaining uses.
var ErrUsageExhausted = errors.New("discount code usage exhausted")

// DiscountRepository defines the interface for discount-code data access.
type DiscountRepository interface {
	Create(ctx context.Context, dc *models.DiscountCode) error
	FindActiveByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	FindAll(ctx context.Context, page, limit int) ([]models.DiscountCode, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Redeem consumes one use if and only if the code is still active and has
	// uses remaining. Callers run it inside the checkout transaction.
	Redeem(ctx context.Context, id uuid.UUID) error
}

// GormDiscountRepository implements DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository.
func NewGormDiscountRepository(db *gorm.DB) DiscountRepository {
	return &GormDiscountRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *GormDiscountRepository) WithTx(tx *gorm.DB) DiscountRepository {
	return &GormDiscountRepository{db: tx}
}

// Create inserts a new discount code.
func (r *GormDiscountRepository) Create(ctx context.Context, dc *models.DiscountCode) error {
	return r.db.WithContext(ctx).Create(dc).Error
}

// FindActiveByCode retrieves an active code by its exact (uppercased) code.
func (r *GormDiscountRepository) FindActiveByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// FindAll retrieves paginated codes, newest first, including deactivated ones
// so the admin list keeps usage history visible.
func (r *GormDiscountRepository) FindAll(ctx context.Context, page, limit int) ([]models.DiscountCode, int64, error) {
	var codes []models.DiscountCode
	var total int64

	query := r.db.WithContext(ctx).Model(&models.DiscountCode{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&codes).Error; err != nil {
		return nil, 0, err
	}

	return codes, total, nil
}

// Deactivate soft-deletes a code by setting is_active = false. The row stays
// so uses_count remains auditable.
func (r *GormDiscountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Redeem increments uses_count only while uses remain, as a single
// conditional UPDATE so two concurrent checkouts can never push the count
// past max_uses.
func (r *GormDiscountRepository) Redeem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("id = ? AND is_active = ? AND (max_uses = 0 OR uses_count < max_uses)", id, true).
		UpdateColumn("uses_count", gorm.Expr("uses_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUsageExhausted
	}
	return nil
}
