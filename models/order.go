package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ShippingDetails is embedded in Order.
type ShippingDetails struct {
	FullName string `gorm:"type:varchar(128)" json:"full_name"`
	Email    string `gorm:"type:varchar(128)" json:"email"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`
	City     string `gorm:"type:varchar(64)" json:"city"`
}

// Order aggregates cart items at the moment of purchase. Item prices are
// snapshotted; later catalog edits never change what was charged.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          string          `gorm:"type:varchar(128);not null;index" json:"user_id"`
	TotalAmount     int64           `gorm:"not null" json:"total_amount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DiscountCode    string          `gorm:"type:varchar(64)" json:"discount_code,omitempty"`
	DiscountAmount  int64           `gorm:"not null;default:0" json:"discount_amount"`
	ShippingDetails ShippingDetails `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_details"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a single purchased line. PriceAtPurchase is the effective unit
// price (per-product discount already applied) at checkout time.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name            string    `gorm:"type:varchar(255)" json:"name"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	PriceAtPurchase int64     `gorm:"not null" json:"price_at_purchase"`
}

// CheckoutRequest places an order from the caller's current cart.
type CheckoutRequest struct {
	ShippingDetails ShippingDetails `json:"shipping_details" binding:"required"`
	DiscountCode    string          `json:"discount_code"`
}

// CheckoutResponse confirms a placed order.
type CheckoutResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	Subtotal       int64     `json:"subtotal"`
	DiscountAmount int64     `json:"discount_amount"`
	Total          int64     `json:"total"`
	Status         string    `json:"status"`
}

// OrderCreatedEvent is published to SNS after a checkout commits.
type OrderCreatedEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	TotalAmount int64     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Timestamp   time.Time `json:"timestamp"`
}
