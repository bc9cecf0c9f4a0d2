package services

import (
	"context"
	"errors"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/pricing"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService defines the interface for shopping-cart business logic.
type CartService interface {
	Get(ctx context.Context, userID string) (*models.CartResponse, *ServiceError)
	AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartResponse, *ServiceError)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartResponse, *ServiceError)
	RemoveItem(ctx context.Context, userID, productID string) (*models.CartResponse, *ServiceError)
	Clear(ctx context.Context, userID string) *ServiceError
	// Snapshot returns the read-only view the discount evaluator needs.
	Snapshot(ctx context.Context, userID string) (pricing.CartSnapshot, *ServiceError)
}

type cartServiceImpl struct {
	carts    repository.CartStore
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartStore, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, logger: logger}
}

func (s *cartServiceImpl) load(ctx context.Context, userID string) (*models.Cart, *ServiceError) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

func (s *cartServiceImpl) save(ctx context.Context, cart *models.Cart) *ServiceError {
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err), zap.String("user_id", cart.UserID))
		return &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}
	return nil
}

func response(cart *models.Cart) *models.CartResponse {
	return &models.CartResponse{
		Cart:      *cart,
		ItemCount: pricing.ItemCount(cart.Items),
		Subtotal:  pricing.Subtotal(cart.Items),
	}
}

// Get returns the user's cart with its pricing summary.
func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*models.CartResponse, *ServiceError) {
	cart, svcErr := s.load(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	return response(cart), nil
}

// AddItem merges a product into the cart, snapshotting catalog fields at add
// time. Out-of-stock products are rejected.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartResponse, *ServiceError) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid product ID"}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product for cart", zap.Error(err), zap.String("product_id", req.ProductID))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add item"}
	}
	if product.Stock == 0 {
		return nil, &ServiceError{StatusCode: 409, Message: "Product is out of stock"}
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cart, svcErr := s.load(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID.String(),
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
			Image:     product.Image,
			Discount:  product.Discount,
			Quantity:  quantity,
		})
	}

	if svcErr := s.save(ctx, cart); svcErr != nil {
		return nil, svcErr
	}
	return response(cart), nil
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1. Lines
// leave the cart only through RemoveItem.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartResponse, *ServiceError) {
	if quantity < 1 {
		quantity = 1
	}

	cart, svcErr := s.load(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, &ServiceError{StatusCode: 404, Message: "Item not in cart"}
	}

	if svcErr := s.save(ctx, cart); svcErr != nil {
		return nil, svcErr
	}
	return response(cart), nil
}

// RemoveItem drops a line from the cart.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID string) (*models.CartResponse, *ServiceError) {
	cart, svcErr := s.load(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if svcErr := s.save(ctx, cart); svcErr != nil {
		return nil, svcErr
	}
	return response(cart), nil
}

// Clear empties the user's cart.
func (s *cartServiceImpl) Clear(ctx context.Context, userID string) *ServiceError {
	if err := s.carts.Delete(ctx, userID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}

// Snapshot derives the evaluator's view of the user's cart.
func (s *cartServiceImpl) Snapshot(ctx context.Context, userID string) (pricing.CartSnapshot, *ServiceError) {
	cart, svcErr := s.load(ctx, userID)
	if svcErr != nil {
		return pricing.CartSnapshot{}, svcErr
	}
	return pricing.SnapshotCart(cart.Items), nil
}
