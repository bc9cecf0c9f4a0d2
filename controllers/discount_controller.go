package controllers

import (
	"net/http"

	"github.com/YodHeVauHe/ShopWithKylie/middleware"
	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DiscountController handles HTTP requests for discount-code operations.
type DiscountController struct {
	discountService services.DiscountService
	cartService     services.CartService
}

// NewDiscountController creates a new DiscountController.
func NewDiscountController(discountService services.DiscountService, cartService services.CartService) *DiscountController {
	return &DiscountController{discountService: discountService, cartService: cartService}
}

// CreateCode handles POST /discounts (admin only).
func (dc *DiscountController) CreateCode(ctx *gin.Context) {
	var req models.CreateDiscountCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, svcErr := dc.discountService.CreateCode(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"discount_code": code})
}

// ListCodes handles GET /discounts (admin only).
func (dc *DiscountController) ListCodes(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	codes, total, svcErr := dc.discountService.ListCodes(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"discount_codes": codes,
		"meta":           paginationMeta(page, limit, total),
	})
}

// DeactivateCode handles DELETE /discounts/:id (admin only). The code stops
// validating but its row and usage count survive.
func (dc *DiscountController) DeactivateCode(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount code ID"})
		return
	}

	if svcErr := dc.discountService.DeactivateCode(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Discount code deactivated"})
}

// ValidateCode handles POST /discounts/validate. Evaluates the submitted code
// against the caller's current cart without consuming a use; rejections come
// back as 200 with valid=false so the storefront can render the reason.
func (dc *DiscountController) ValidateCode(ctx *gin.Context) {
	var req models.ValidateDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snap, svcErr := dc.cartService.Snapshot(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	resp, svcErr := dc.discountService.Validate(ctx.Request.Context(), req.Code, snap)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
