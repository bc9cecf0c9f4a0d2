package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/YodHeVauHe/ShopWithKylie/cache"
	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductService defines the interface for catalog business logic.
type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, *ServiceError)
	Get(ctx context.Context, id uuid.UUID) (*models.ProductResponse, *ServiceError)
	List(ctx context.Context, page, limit int, filters repository.ProductFilters) ([]models.ProductResponse, int64, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ProductResponse, *ServiceError)
	Delete(ctx context.Context, id uuid.UUID) *ServiceError
	ApplyBulkDiscount(ctx context.Context, req *models.BulkDiscountRequest) (int64, *ServiceError)
	RemoveBulkDiscount(ctx context.Context, req *models.BulkDiscountRemoveRequest) (int64, *ServiceError)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	cache  cache.ProductCache
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, productCache cache.ProductCache, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, cache: productCache, logger: logger}
}

func filterKey(f repository.ProductFilters) string {
	return fmt.Sprintf("c=%s:a=%s:d=%t", f.Category, f.TargetAudience, f.DiscountedOnly)
}

// Create inserts a new product and invalidates cached listings.
func (s *productServiceImpl) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, *ServiceError) {
	p := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		TargetAudience: req.TargetAudience,
		Price:          req.Price,
		Stock:          req.Stock,
		Image:          req.Image,
		Images:         pq.StringArray(req.Images),
		Sizes:          pq.StringArray(req.Sizes),
		Colors:         pq.StringArray(req.Colors),
		Discount:       req.Discount,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Product created", zap.String("id", p.ID.String()), zap.String("name", p.Name))

	resp := models.NewProductResponse(*p)
	return &resp, nil
}

// Get retrieves a single product, cache first.
func (s *productServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.ProductResponse, *ServiceError) {
	if cached, ok := s.cache.GetProduct(ctx, id.String()); ok {
		return cached, nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.Error(err), zap.String("id", id.String()))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	resp := models.NewProductResponse(*p)
	s.cache.SetProduct(ctx, resp)
	return &resp, nil
}

// List retrieves paginated products, cache first. Status is derived on every
// read so it can never disagree with the stored stock.
func (s *productServiceImpl) List(ctx context.Context, page, limit int, filters repository.ProductFilters) ([]models.ProductResponse, int64, *ServiceError) {
	fkey := filterKey(filters)
	if cached, total, ok := s.cache.GetList(ctx, page, limit, fkey); ok {
		return cached, total, nil
	}

	products, total, err := s.repo.FindAll(ctx, page, limit, filters)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list products"}
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, models.NewProductResponse(p))
	}

	s.cache.SetList(ctx, page, limit, fkey, responses, total)
	return responses, total, nil
}

// Update applies a partial update and invalidates the product's cache
// entries.
func (s *productServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ProductResponse, *ServiceError) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product for update", zap.Error(err), zap.String("id", id.String()))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.TargetAudience != nil {
		p.TargetAudience = *req.TargetAudience
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Images != nil {
		p.Images = pq.StringArray(req.Images)
	}
	if req.Sizes != nil {
		p.Sizes = pq.StringArray(req.Sizes)
	}
	if req.Colors != nil {
		p.Colors = pq.StringArray(req.Colors)
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err), zap.String("id", id.String()))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}

	s.cache.InvalidateProduct(ctx, id.String())

	resp := models.NewProductResponse(*p)
	return &resp, nil
}

// Delete soft-deletes a product.
func (s *productServiceImpl) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to delete product", zap.Error(err), zap.String("id", id.String()))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}

	s.cache.InvalidateProduct(ctx, id.String())
	s.logger.Info("Product deleted", zap.String("id", id.String()))
	return nil
}

// ApplyBulkDiscount writes one sale percentage to the whole id set in a
// single statement. This is the persistent per-product discount; coupon
// codes are untouched.
func (s *productServiceImpl) ApplyBulkDiscount(ctx context.Context, req *models.BulkDiscountRequest) (int64, *ServiceError) {
	updated, err := s.repo.SetDiscount(ctx, req.ProductIDs, req.DiscountPercentage)
	if err != nil {
		s.logger.Error("Failed to apply bulk discount", zap.Error(err))
		return 0, &ServiceError{StatusCode: 500, Message: "Failed to apply discount"}
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Bulk discount applied",
		zap.Int("percentage", req.DiscountPercentage),
		zap.Int("requested", len(req.ProductIDs)),
		zap.Int64("updated", updated),
	)
	return updated, nil
}

// RemoveBulkDiscount sets discount to 0 (explicit zeroing, not NULL) on the
// id set so consumers can treat "0 or absent" uniformly as no discount.
func (s *productServiceImpl) RemoveBulkDiscount(ctx context.Context, req *models.BulkDiscountRemoveRequest) (int64, *ServiceError) {
	updated, err := s.repo.SetDiscount(ctx, req.ProductIDs, 0)
	if err != nil {
		s.logger.Error("Failed to remove bulk discount", zap.Error(err))
		return 0, &ServiceError{StatusCode: 500, Message: "Failed to remove discount"}
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Bulk discount removed",
		zap.Int("requested", len(req.ProductIDs)),
		zap.Int64("updated", updated),
	)
	return updated, nil
}
