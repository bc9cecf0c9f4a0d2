package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DiscountCode represents a percentage coupon stored in Postgres. Deleting a
// code sets IsActive to false so usage history survives.
type DiscountCode struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code                 string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	DiscountPercentage   int            `gorm:"not null" json:"discount_percentage"`
	Description          string         `gorm:"type:text" json:"description,omitempty"`
	MaxUses              int            `gorm:"not null;default:0" json:"max_uses"` // 0 = unlimited
	UsesCount            int            `gorm:"not null;default:0" json:"uses_count"`
	IsActive             bool           `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt            *time.Time     `json:"expires_at,omitempty"` // nil = never expires
	MinimumAmount        int64          `gorm:"not null;default:0" json:"minimum_amount"` // 0 = none
	ApplicableProducts   pq.StringArray `gorm:"type:text[]" json:"applicable_products,omitempty"`
	ApplicableCategories pq.StringArray `gorm:"type:text[]" json:"applicable_categories,omitempty"`
	CreatedBy            string         `gorm:"type:varchar(128)" json:"created_by"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateDiscountCodeRequest is the payload for creating a discount code.
// Code is optional; a random one is generated when absent.
type CreateDiscountCodeRequest struct {
	Code                 string     `json:"code" binding:"omitempty,min=3,max=64"`
	DiscountPercentage   int        `json:"discount_percentage" binding:"required,gte=1,lte=100"`
	Description          string     `json:"description"`
	MaxUses              int        `json:"max_uses" binding:"gte=0"`
	ExpiresAt            *time.Time `json:"expires_at"`
	MinimumAmount        int64      `json:"minimum_amount" binding:"gte=0"`
	ApplicableProducts   []string   `json:"applicable_products"`
	ApplicableCategories []string   `json:"applicable_categories"`
}

// ValidateDiscountRequest is the payload for validating a code against the
// caller's cart. Validation is read-only; it never consumes a use.
type ValidateDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateDiscountResponse reports the evaluation outcome plus a pricing
// preview when the code is valid.
type ValidateDiscountResponse struct {
	Valid          bool          `json:"valid"`
	Code           string        `json:"code"`
	Message        string        `json:"message,omitempty"`
	Shortfall      int64         `json:"shortfall,omitempty"`
	DiscountCode   *DiscountCode `json:"discount_code,omitempty"`
	Subtotal       int64         `json:"subtotal,omitempty"`
	DiscountAmount int64         `json:"discount_amount,omitempty"`
	Total          int64         `json:"total,omitempty"`
}

// DiscountRedeemedEvent is published to SNS after a code is consumed by a
// committed checkout.
type DiscountRedeemedEvent struct {
	EventType      string    `json:"event_type"`
	CodeID         string    `json:"code_id"`
	Code           string    `json:"code"`
	OrderID        string    `json:"order_id"`
	DiscountAmount int64     `json:"discount_amount"`
	Timestamp      time.Time `json:"timestamp"`
}
