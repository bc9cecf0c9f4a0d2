package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/YodHeVauHe/ShopWithKylie/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockOrderRepo struct {
	orders []*models.Order
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepo) FindByIDAndUserID(_ context.Context, orderID uuid.UUID, userID string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID string, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) SalesSummary(_ context.Context) (int64, int64, error) {
	var count, revenue int64
	for _, o := range m.orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		count++
		revenue += o.TotalAmount
	}
	return count, revenue, nil
}

func (m *mockOrderRepo) RevenueByDay(_ context.Context, since time.Time) ([]repository.DailyRevenue, error) {
	byDay := make(map[time.Time]*repository.DailyRevenue)
	for _, o := range m.orders {
		if o.Status == models.OrderStatusCancelled || o.CreatedAt.Before(since) {
			continue
		}
		day := o.CreatedAt.Truncate(24 * time.Hour)
		if byDay[day] == nil {
			byDay[day] = &repository.DailyRevenue{Day: day}
		}
		byDay[day].Orders++
		byDay[day].Revenue += o.TotalAmount
	}
	var rows []repository.DailyRevenue
	for _, r := range byDay {
		rows = append(rows, *r)
	}
	return rows, nil
}

func seedOrder(repo *mockOrderRepo, userID string, total int64, status string) *models.Order {
	o := &models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: total,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	repo.orders = append(repo.orders, o)
	return o
}

// --- Tests ---

func TestService_GetUserOrders_OnlyOwn(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := services.NewOrderService(repo, zap.NewNop())

	seedOrder(repo, "user-1", 100000, models.OrderStatusPending)
	seedOrder(repo, "user-1", 50000, models.OrderStatusDelivered)
	seedOrder(repo, "user-2", 75000, models.OrderStatusPending)

	orders, total, svcErr := svc.GetUserOrders(context.Background(), "user-1", 1, 10)
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}

func TestService_GetOrder_OtherUsersOrderIsNotFound(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := services.NewOrderService(repo, zap.NewNop())

	o := seedOrder(repo, "user-2", 100000, models.OrderStatusPending)

	_, svcErr := svc.GetOrder(context.Background(), "user-1", o.ID.String())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestService_GetOrder_InvalidID(t *testing.T) {
	svc := services.NewOrderService(&mockOrderRepo{}, zap.NewNop())

	_, svcErr := svc.GetOrder(context.Background(), "user-1", "not-a-uuid")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestService_GetAllOrders(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := services.NewOrderService(repo, zap.NewNop())

	seedOrder(repo, "user-1", 100000, models.OrderStatusPending)
	seedOrder(repo, "user-2", 50000, models.OrderStatusShipped)

	orders, total, svcErr := svc.GetAllOrders(context.Background(), 1, 10)
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}
