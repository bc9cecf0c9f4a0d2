package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/models"
)

// OutcomeKind discriminates the result of evaluating a discount code.
type OutcomeKind string

const (
	OutcomeValid         OutcomeKind = "valid"
	OutcomeEmptyInput    OutcomeKind = "empty_input"
	OutcomeInvalid       OutcomeKind = "invalid"
	OutcomeExpired       OutcomeKind = "expired"
	OutcomeExhausted     OutcomeKind = "exhausted_uses"
	OutcomeBelowMinimum  OutcomeKind = "below_minimum"
	OutcomeNotApplicable OutcomeKind = "not_applicable"
)

// Outcome is the result of evaluating a code against a cart snapshot. Only
// OutcomeValid carries the code record; OutcomeBelowMinimum carries the
// shortfall for the user-facing message.
type Outcome struct {
	Kind      OutcomeKind
	Code      *models.DiscountCode
	Minimum   int64
	Shortfall int64
}

// Valid reports whether the code may be applied.
func (o Outcome) Valid() bool {
	return o.Kind == OutcomeValid
}

// Message is the user-displayable rejection reason.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeValid:
		return "Discount code applied"
	case OutcomeEmptyInput:
		return "Please enter a discount code"
	case OutcomeInvalid:
		return "Invalid discount code"
	case OutcomeExpired:
		return "Discount code has expired"
	case OutcomeExhausted:
		return "Discount code has reached maximum uses"
	case OutcomeBelowMinimum:
		return fmt.Sprintf("Minimum order amount of UGX %d required", o.Minimum)
	case OutcomeNotApplicable:
		return "Discount code not applicable to these products"
	default:
		return "Invalid discount code"
	}
}

// CartSnapshot is the read-only view of a cart the evaluator needs.
type CartSnapshot struct {
	Subtotal   int64
	ProductIDs []string
	Categories []string
}

// SnapshotCart derives a CartSnapshot from cart items.
func SnapshotCart(items []models.CartItem) CartSnapshot {
	snap := CartSnapshot{Subtotal: Subtotal(items)}
	seenCat := make(map[string]bool)
	for _, item := range items {
		snap.ProductIDs = append(snap.ProductIDs, item.ProductID)
		if !seenCat[item.Category] {
			seenCat[item.Category] = true
			snap.Categories = append(snap.Categories, item.Category)
		}
	}
	return snap
}

// NormalizeCode trims and uppercases a submitted code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Evaluate decides whether a code is usable against a cart. dc is the active
// record found for the normalized input, or nil when the lookup missed.
// Evaluation has no side effects; consuming a use is a separate step taken
// only after a checkout commits.
//
// Checks run in a fixed order so the reported reason is deterministic:
// empty input, lookup, expiry, usage cap, minimum amount, product scope,
// category scope. Expiry is exclusive of the boundary: a code whose
// ExpiresAt equals now is still valid.
func Evaluate(raw string, dc *models.DiscountCode, now time.Time, cart CartSnapshot) Outcome {
	if NormalizeCode(raw) == "" {
		return Outcome{Kind: OutcomeEmptyInput}
	}

	if dc == nil || !dc.IsActive {
		return Outcome{Kind: OutcomeInvalid}
	}

	if dc.ExpiresAt != nil && dc.ExpiresAt.Before(now) {
		return Outcome{Kind: OutcomeExpired}
	}

	if dc.MaxUses > 0 && dc.UsesCount >= dc.MaxUses {
		return Outcome{Kind: OutcomeExhausted}
	}

	if dc.MinimumAmount > 0 && cart.Subtotal < dc.MinimumAmount {
		return Outcome{
			Kind:      OutcomeBelowMinimum,
			Minimum:   dc.MinimumAmount,
			Shortfall: dc.MinimumAmount - cart.Subtotal,
		}
	}

	if len(dc.ApplicableProducts) > 0 && !intersects(dc.ApplicableProducts, cart.ProductIDs) {
		return Outcome{Kind: OutcomeNotApplicable}
	}

	if len(dc.ApplicableCategories) > 0 && !intersects(dc.ApplicableCategories, cart.Categories) {
		return Outcome{Kind: OutcomeNotApplicable}
	}

	return Outcome{Kind: OutcomeValid, Code: dc}
}

func intersects(scope []string, have []string) bool {
	set := make(map[string]bool, len(scope))
	for _, s := range scope {
		set[s] = true
	}
	for _, h := range have {
		if set[h] {
			return true
		}
	}
	return false
}
