package services_test

import (
	"context"
	"testing"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestService_Dashboard(t *testing.T) {
	products := newMockProductRepo()
	orders := &mockOrderRepo{}
	svc := services.NewMetricsService(products, orders, zap.NewNop())

	seedProduct(products, "In Stock", 100000, 50, 0)
	seedProduct(products, "Low", 100000, 5, 0)
	seedProduct(products, "Out", 100000, 0, 0)

	seedOrder(orders, "user-1", 100000, models.OrderStatusDelivered)
	seedOrder(orders, "user-2", 50000, models.OrderStatusPending)
	seedOrder(orders, "user-3", 999999, models.OrderStatusCancelled)

	metrics, svcErr := svc.Dashboard(context.Background())
	assert.Nil(t, svcErr)

	assert.Equal(t, int64(3), metrics.ProductCount)
	assert.Equal(t, int64(3), metrics.ProductsByCategory["Sneakers"])
	assert.Equal(t, int64(55), metrics.Stock.TotalUnits)
	assert.Equal(t, int64(1), metrics.Stock.LowStockCount)
	assert.Equal(t, int64(1), metrics.Stock.OutOfStockCount)
	assert.Equal(t, int64(2), metrics.Sales.TotalOrders, "cancelled orders are excluded")
	assert.Equal(t, int64(150000), metrics.Sales.TotalRevenue)
}

func TestService_RevenueByDay_ClampsWindow(t *testing.T) {
	orders := &mockOrderRepo{}
	svc := services.NewMetricsService(newMockProductRepo(), orders, zap.NewNop())

	recent := seedOrder(orders, "user-1", 100000, models.OrderStatusDelivered)
	old := seedOrder(orders, "user-2", 50000, models.OrderStatusDelivered)
	old.CreatedAt = recent.CreatedAt.AddDate(0, 0, -3)

	// days=0 clamps to a 1-day window: the 3-day-old order is out.
	rows, svcErr := svc.RevenueByDay(context.Background(), 0)
	assert.Nil(t, svcErr)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(100000), rows[0].Revenue)

	// days=400 clamps to 365: both orders are in.
	rows, svcErr = svc.RevenueByDay(context.Background(), 400)
	assert.Nil(t, svcErr)
	var total int64
	for _, r := range rows {
		total += r.Revenue
	}
	assert.Equal(t, int64(150000), total)
}
