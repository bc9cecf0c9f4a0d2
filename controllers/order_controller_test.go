package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/YodHeVauHe/ShopWithKylie/controllers"
	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Mock CheckoutService ---

type mockCheckoutService struct {
	checkoutFn func(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.CheckoutResponse, *services.ServiceError)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.CheckoutResponse, *services.ServiceError) {
	return m.checkoutFn(ctx, userID, req)
}

// --- Mock OrderService ---

type mockOrderService struct {
	userOrdersFn func(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, *services.ServiceError)
	getOrderFn   func(ctx context.Context, userID, orderID string) (*models.Order, *services.ServiceError)
	allOrdersFn  func(ctx context.Context, page, limit int) ([]models.Order, int64, *services.ServiceError)
}

func (m *mockOrderService) GetUserOrders(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, *services.ServiceError) {
	return m.userOrdersFn(ctx, userID, page, limit)
}
func (m *mockOrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, *services.ServiceError) {
	return m.getOrderFn(ctx, userID, orderID)
}
func (m *mockOrderService) GetAllOrders(ctx context.Context, page, limit int) ([]models.Order, int64, *services.ServiceError) {
	return m.allOrdersFn(ctx, page, limit)
}

func setupOrderRouter(checkout services.CheckoutService, orders services.OrderService) *gin.Engine {
	r := gin.New()
	r.Use(authStub("user-test-id", ""))

	oc := controllers.NewOrderController(checkout, orders)
	r.POST("/orders/checkout", oc.Checkout)
	r.GET("/orders", oc.ListOrders)
	r.GET("/orders/:id", oc.GetOrder)
	r.GET("/admin/orders", oc.ListAllOrders)
	return r
}

func validCheckoutRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		ShippingDetails: models.ShippingDetails{
			FullName: "Kylie Aine",
			Email:    "kylie@example.com",
			Phone:    "+256700000000",
			Address:  "Plot 4, Kampala Road",
			City:     "Kampala",
		},
	}
}

// --- Tests ---

func TestController_Checkout_Success(t *testing.T) {
	svc := &mockCheckoutService{
		checkoutFn: func(_ context.Context, userID string, _ *models.CheckoutRequest) (*models.CheckoutResponse, *services.ServiceError) {
			assert.Equal(t, "user-test-id", userID)
			return &models.CheckoutResponse{
				OrderID:  uuid.New(),
				Subtotal: 100000,
				Total:    100000,
				Status:   models.OrderStatusPending,
			}, nil
		},
	}
	r := setupOrderRouter(svc, &mockOrderService{})

	w := doJSON(t, r, http.MethodPost, "/orders/checkout", validCheckoutRequest())

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp models.CheckoutResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(100000), resp.Total)
}

func TestController_Checkout_EmptyCart(t *testing.T) {
	svc := &mockCheckoutService{
		checkoutFn: func(_ context.Context, _ string, _ *models.CheckoutRequest) (*models.CheckoutResponse, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 400, Message: "Cart is empty"}
		},
	}
	r := setupOrderRouter(svc, &mockOrderService{})

	w := doJSON(t, r, http.MethodPost, "/orders/checkout", validCheckoutRequest())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_Checkout_ExhaustedCode(t *testing.T) {
	svc := &mockCheckoutService{
		checkoutFn: func(_ context.Context, _ string, _ *models.CheckoutRequest) (*models.CheckoutResponse, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 409, Message: "Discount code has reached maximum uses"}
		},
	}
	r := setupOrderRouter(svc, &mockOrderService{})

	req := validCheckoutRequest()
	req.DiscountCode = "LAST"
	w := doJSON(t, r, http.MethodPost, "/orders/checkout", req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestController_ListOrders(t *testing.T) {
	svc := &mockOrderService{
		userOrdersFn: func(_ context.Context, userID string, _, _ int) ([]models.Order, int64, *services.ServiceError) {
			assert.Equal(t, "user-test-id", userID)
			return []models.Order{{ID: uuid.New(), UserID: userID, TotalAmount: 50000}}, 1, nil
		},
	}
	r := setupOrderRouter(&mockCheckoutService{}, svc)

	w := doJSON(t, r, http.MethodGet, "/orders", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NotNil(t, resp["orders"])
}

func TestController_GetOrder_NotFound(t *testing.T) {
	svc := &mockOrderService{
		getOrderFn: func(_ context.Context, _, _ string) (*models.Order, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 404, Message: "Order not found"}
		},
	}
	r := setupOrderRouter(&mockCheckoutService{}, svc)

	w := doJSON(t, r, http.MethodGet, "/orders/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
