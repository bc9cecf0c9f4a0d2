package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// StockStatus is derived from the stock level, never stored.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"

	// LowStockThreshold marks products as "Low Stock" below this level.
	LowStockThreshold = 15
)

// Product represents a catalog item stored in Postgres. Prices are whole
// currency units (UGX). Discount is the persistent sale percentage (0 = none).
type Product struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       string         `gorm:"type:varchar(64);not null;index" json:"category"`
	TargetAudience string         `gorm:"type:varchar(16)" json:"target_audience,omitempty"`
	Price          int64          `gorm:"not null" json:"price"`
	Stock          int            `gorm:"not null;default:0" json:"stock"`
	Image          string         `gorm:"type:text" json:"image"`
	Images         pq.StringArray `gorm:"type:text[]" json:"images,omitempty"`
	Sizes          pq.StringArray `gorm:"type:text[]" json:"sizes,omitempty"`
	Colors         pq.StringArray `gorm:"type:text[]" json:"colors,omitempty"`
	Discount       int            `gorm:"not null;default:0" json:"discount"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Status recomputes the stock status at read time so it can never desync
// from the stored stock level.
func (p *Product) Status() StockStatus {
	switch {
	case p.Stock == 0:
		return StatusOutOfStock
	case p.Stock < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ProductResponse is a Product plus its derived status.
type ProductResponse struct {
	Product
	Status StockStatus `json:"status"`
}

// NewProductResponse attaches the derived status to a product.
func NewProductResponse(p Product) ProductResponse {
	return ProductResponse{Product: p, Status: p.Status()}
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=255"`
	Description    string   `json:"description"`
	Category       string   `json:"category" binding:"required"`
	TargetAudience string   `json:"target_audience" binding:"omitempty,oneof=Men Women Kids Unisex"`
	Price          int64    `json:"price" binding:"required,gte=0"`
	Stock          int      `json:"stock" binding:"gte=0"`
	Image          string   `json:"image"`
	Images         []string `json:"images"`
	Sizes          []string `json:"sizes"`
	Colors         []string `json:"colors"`
	Discount       int      `json:"discount" binding:"gte=0,lte=100"`
}

// UpdateProductRequest carries optional fields for partial updates.
type UpdateProductRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	TargetAudience *string  `json:"target_audience" binding:"omitempty,oneof=Men Women Kids Unisex"`
	Price          *int64   `json:"price" binding:"omitempty,gte=0"`
	Stock          *int     `json:"stock" binding:"omitempty,gte=0"`
	Image          *string  `json:"image"`
	Images         []string `json:"images"`
	Sizes          []string `json:"sizes"`
	Colors         []string `json:"colors"`
	Discount       *int     `json:"discount" binding:"omitempty,gte=0,lte=100"`
}

// BulkDiscountRequest applies one discount percentage to a set of products.
type BulkDiscountRequest struct {
	ProductIDs         []uuid.UUID `json:"product_ids" binding:"required,min=1"`
	DiscountPercentage int         `json:"discount_percentage" binding:"required,gte=1,lte=100"`
}

// BulkDiscountRemoveRequest clears the discount (sets it to 0) on a set of
// products.
type BulkDiscountRemoveRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
}
