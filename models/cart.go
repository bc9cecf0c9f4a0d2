package models

import "time"

// CartItem is a product snapshot plus a quantity. The snapshot is taken when
// the item is added so cart pricing is stable between catalog reads; checkout
// re-reads the catalog before committing.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	Discount  int    `json:"discount"`
	Quantity  int    `json:"quantity"`
}

// Cart is the active shopping session for a user, stored in Redis.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

// UpdateCartItemRequest sets the quantity of an existing line. Quantities are
// clamped to a minimum of 1; removing a line is a separate operation.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartResponse is the cart plus its derived pricing summary.
type CartResponse struct {
	Cart      `json:"cart"`
	ItemCount int   `json:"item_count"`
	Subtotal  int64 `json:"subtotal"`
}
