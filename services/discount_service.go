package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/pricing"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a random discount code of the given length.
func GenerateCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// DiscountService defines the interface for discount-code business logic.
type DiscountService interface {
	CreateCode(ctx context.Context, createdBy string, req *models.CreateDiscountCodeRequest) (*models.DiscountCode, *ServiceError)
	ListCodes(ctx context.Context, page, limit int) ([]models.DiscountCode, int64, *ServiceError)
	DeactivateCode(ctx context.Context, id uuid.UUID) *ServiceError
	// Validate evaluates a code against a cart snapshot. Read-only: it never
	// consumes a use, so applying the same code twice yields the same result.
	Validate(ctx context.Context, code string, snap pricing.CartSnapshot) (*models.ValidateDiscountResponse, *ServiceError)
	// Lookup finds the active record for the evaluator without judging it.
	Lookup(ctx context.Context, code string) (*models.DiscountCode, *ServiceError)
}

type discountServiceImpl struct {
	repo   repository.DiscountRepository
	logger *zap.Logger
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(repo repository.DiscountRepository, logger *zap.Logger) DiscountService {
	return &discountServiceImpl{repo: repo, logger: logger}
}

// CreateCode creates a discount code, generating one when none is supplied.
func (s *discountServiceImpl) CreateCode(ctx context.Context, createdBy string, req *models.CreateDiscountCodeRequest) (*models.DiscountCode, *ServiceError) {
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return nil, &ServiceError{StatusCode: 400, Message: "Expiry date must be in the future"}
	}

	code := pricing.NormalizeCode(req.Code)
	if code == "" {
		code = GenerateCode(8)
	}

	dc := &models.DiscountCode{
		Code:                 code,
		DiscountPercentage:   req.DiscountPercentage,
		Description:          req.Description,
		MaxUses:              req.MaxUses,
		UsesCount:            0,
		IsActive:             true,
		ExpiresAt:            req.ExpiresAt,
		MinimumAmount:        req.MinimumAmount,
		ApplicableProducts:   pq.StringArray(req.ApplicableProducts),
		ApplicableCategories: pq.StringArray(req.ApplicableCategories),
		CreatedBy:            createdBy,
	}

	if err := s.repo.Create(ctx, dc); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "Discount code already exists"}
		}
		s.logger.Error("Failed to create discount code", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create discount code"}
	}

	s.logger.Info("Discount code created",
		zap.String("code", dc.Code),
		zap.Int("percentage", dc.DiscountPercentage),
		zap.String("created_by", createdBy),
	)
	return dc, nil
}

// ListCodes returns paginated discount codes.
func (s *discountServiceImpl) ListCodes(ctx context.Context, page, limit int) ([]models.DiscountCode, int64, *ServiceError) {
	codes, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list discount codes", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list discount codes"}
	}
	return codes, total, nil
}

// DeactivateCode soft-deletes a code; the row and its usage count remain.
func (s *discountServiceImpl) DeactivateCode(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Discount code not found"}
		}
		s.logger.Error("Failed to deactivate discount code", zap.Error(err), zap.String("id", id.String()))
		return &ServiceError{StatusCode: 500, Message: "Failed to deactivate discount code"}
	}

	s.logger.Info("Discount code deactivated", zap.String("id", id.String()))
	return nil
}

// Lookup fetches the active record for a normalized code. A miss returns
// (nil, nil) so the evaluator can report Invalid; only storage failures
// surface as ServiceErrors.
func (s *discountServiceImpl) Lookup(ctx context.Context, code string) (*models.DiscountCode, *ServiceError) {
	normalized := pricing.NormalizeCode(code)
	if normalized == "" {
		return nil, nil
	}

	dc, err := s.repo.FindActiveByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("Failed to look up discount code", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to validate discount code"}
	}
	return dc, nil
}

// Validate runs the pure evaluator against the cart snapshot and attaches a
// pricing preview when the code passes.
func (s *discountServiceImpl) Validate(ctx context.Context, code string, snap pricing.CartSnapshot) (*models.ValidateDiscountResponse, *ServiceError) {
	dc, svcErr := s.Lookup(ctx, code)
	if svcErr != nil {
		return nil, svcErr
	}

	outcome := pricing.Evaluate(code, dc, time.Now(), snap)
	resp := &models.ValidateDiscountResponse{
		Valid:     outcome.Valid(),
		Code:      pricing.NormalizeCode(code),
		Message:   outcome.Message(),
		Shortfall: outcome.Shortfall,
	}

	if outcome.Valid() {
		discount := pricing.CouponDiscount(snap.Subtotal, outcome.Code.DiscountPercentage)
		resp.DiscountCode = outcome.Code
		resp.Subtotal = snap.Subtotal
		resp.DiscountAmount = discount
		resp.Total = snap.Subtotal - discount
	}
	return resp, nil
}
