package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	aws_pkg "github.com/YodHeVauHe/ShopWithKylie/pkg/aws"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/pricing"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService defines the interface for placing orders.
type CheckoutService interface {
	Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.CheckoutResponse, *ServiceError)
}

type checkoutServiceImpl struct {
	carts       repository.CartStore
	products    repository.ProductRepository
	discounts   DiscountService
	store       repository.CheckoutStore
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	carts repository.CartStore,
	products repository.ProductRepository,
	discounts DiscountService,
	store repository.CheckoutStore,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:       carts,
		products:    products,
		discounts:   discounts,
		store:       store,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// Checkout places an order from the user's cart. Line prices are re-read
// from the catalog and snapshotted into the order; the optional discount
// code is re-validated against that snapshot and consumed atomically with
// the order insert. After this point catalog edits cannot change what was
// charged, and only committed checkouts count as redemptions.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.CheckoutResponse, *ServiceError) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart for checkout", zap.Error(err), zap.String("user_id", userID))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	items, svcErr := s.refreshItems(ctx, cart.Items)
	if svcErr != nil {
		return nil, svcErr
	}

	var applied *models.DiscountCode
	if req.DiscountCode != "" {
		dc, svcErr := s.discounts.Lookup(ctx, req.DiscountCode)
		if svcErr != nil {
			return nil, svcErr
		}
		outcome := pricing.Evaluate(req.DiscountCode, dc, time.Now(), pricing.SnapshotCart(items))
		if !outcome.Valid() {
			return nil, &ServiceError{StatusCode: 400, Message: outcome.Message()}
		}
		applied = outcome.Code
	}

	summary := pricing.Totals(items, applied)

	order := &models.Order{
		UserID:          userID,
		TotalAmount:     summary.Total,
		Status:          models.OrderStatusPending,
		DiscountAmount:  summary.DiscountAmount,
		ShippingDetails: req.ShippingDetails,
	}
	var discountID *uuid.UUID
	if applied != nil {
		order.DiscountCode = applied.Code
		discountID = &applied.ID
	}
	for _, item := range items {
		productID, parseErr := uuid.Parse(item.ProductID)
		if parseErr != nil {
			return nil, &ServiceError{StatusCode: 500, Message: "Corrupt cart item"}
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       productID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: pricing.EffectiveUnitPrice(item.Price, item.Discount),
		})
	}

	if err := s.store.PlaceOrder(ctx, order, discountID); err != nil {
		if errors.Is(err, repository.ErrUsageExhausted) {
			// Another checkout consumed the last use between validation and
			// commit; the transaction rolled back.
			return nil, &ServiceError{StatusCode: 409, Message: "Discount code has reached maximum uses"}
		}
		s.logger.Error("Failed to place order", zap.Error(err), zap.String("user_id", userID))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	if err := s.carts.Delete(ctx, userID); err != nil {
		// The order is committed; a surviving cart is an annoyance, not a loss.
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err), zap.String("user_id", userID))
	}

	s.publishEvents(ctx, order, applied, summary)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.Int64("total", summary.Total),
		zap.Int64("discount", summary.DiscountAmount),
	)

	return &models.CheckoutResponse{
		OrderID:        order.ID,
		Subtotal:       summary.Subtotal,
		DiscountAmount: summary.DiscountAmount,
		Total:          summary.Total,
		Status:         order.Status,
	}, nil
}

// refreshItems re-reads the catalog so checkout charges current prices, not
// whatever was snapshotted when the item went into the cart.
func (s *checkoutServiceImpl) refreshItems(ctx context.Context, cartItems []models.CartItem) ([]models.CartItem, *ServiceError) {
	ids := make([]uuid.UUID, 0, len(cartItems))
	for _, item := range cartItems {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, &ServiceError{StatusCode: 500, Message: "Corrupt cart item"}
		}
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to fetch products for checkout", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	items := make([]models.CartItem, 0, len(cartItems))
	for _, item := range cartItems {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, &ServiceError{StatusCode: 409, Message: "An item in your cart is no longer available"}
		}
		items = append(items, models.CartItem{
			ProductID: item.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Image:     p.Image,
			Discount:  p.Discount,
			Quantity:  item.Quantity,
		})
	}
	return items, nil
}

// publishEvents emits order/discount events best-effort after commit.
func (s *checkoutServiceImpl) publishEvents(ctx context.Context, order *models.Order, applied *models.DiscountCode, summary pricing.Summary) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	orderEvent := models.OrderCreatedEvent{
		EventType:   "order.created",
		OrderID:     order.ID.String(),
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		Timestamp:   time.Now(),
	}
	if data, err := json.Marshal(orderEvent); err == nil {
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, data); err != nil {
			s.logger.Error("Failed to publish order.created event", zap.Error(err))
		}
	}

	if applied == nil {
		return
	}
	redeemEvent := models.DiscountRedeemedEvent{
		EventType:      "discount.redeemed",
		CodeID:         applied.ID.String(),
		Code:           applied.Code,
		OrderID:        order.ID.String(),
		DiscountAmount: summary.DiscountAmount,
		Timestamp:      time.Now(),
	}
	if data, err := json.Marshal(redeemEvent); err == nil {
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, data); err != nil {
			s.logger.Error("Failed to publish discount.redeemed event", zap.Error(err))
		}
	}
}
