// Package pricing holds the cart pricing and discount-code evaluation rules.
// Everything here is a pure function over its inputs; lookups and writes live
// in the repositories.
package pricing

import (
	"github.com/YodHeVauHe/ShopWithKylie/models"
)

// Summary is the computed price breakdown for a cart.
type Summary struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discount_amount"`
	Total          int64 `json:"total"`
}

// roundDiv divides a by b rounding half up. Amounts are whole non-negative
// currency units, matching the original storefront's Math.round behavior.
func roundDiv(a, b int64) int64 {
	return (a + b/2) / b
}

// EffectiveUnitPrice applies a product's own sale percentage to its price.
// Discounts outside [0,100] are clamped.
func EffectiveUnitPrice(price int64, discount int) int64 {
	if discount <= 0 {
		return price
	}
	if discount > 100 {
		discount = 100
	}
	return roundDiv(price*int64(100-discount), 100)
}

// Subtotal sums the effective line prices of a cart. Per-product discounts
// are applied here, before any coupon.
func Subtotal(items []models.CartItem) int64 {
	var sum int64
	for _, item := range items {
		sum += EffectiveUnitPrice(item.Price, item.Discount) * int64(item.Quantity)
	}
	return sum
}

// CouponDiscount computes the coupon deduction for an already-discounted
// subtotal. The result is always within [0, subtotal].
func CouponDiscount(subtotal int64, percentage int) int64 {
	if percentage <= 0 || subtotal <= 0 {
		return 0
	}
	if percentage > 100 {
		percentage = 100
	}
	d := roundDiv(subtotal*int64(percentage), 100)
	if d > subtotal {
		d = subtotal
	}
	return d
}

// Totals derives the full price breakdown for a cart with an optional coupon.
// The coupon applies on top of the per-product discounts already reflected in
// the subtotal; the total is clamped at zero.
func Totals(items []models.CartItem, dc *models.DiscountCode) Summary {
	subtotal := Subtotal(items)

	var discount int64
	if dc != nil {
		discount = CouponDiscount(subtotal, dc.DiscountPercentage)
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	return Summary{Subtotal: subtotal, DiscountAmount: discount, Total: total}
}

// ItemCount is the cart badge count: the sum of line quantities, not the
// number of distinct lines.
func ItemCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
