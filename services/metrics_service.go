package services

import (
	"context"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"go.uber.org/zap"
)

// MetricsService aggregates the numbers behind the admin dashboard.
type MetricsService interface {
	Dashboard(ctx context.Context) (*models.DashboardMetrics, *ServiceError)
	RevenueByDay(ctx context.Context, days int) ([]repository.DailyRevenue, *ServiceError)
}

type metricsServiceImpl struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(products repository.ProductRepository, orders repository.OrderRepository, logger *zap.Logger) MetricsService {
	return &metricsServiceImpl{products: products, orders: orders, logger: logger}
}

// Dashboard assembles catalog, stock and sales aggregates in one payload.
func (s *metricsServiceImpl) Dashboard(ctx context.Context) (*models.DashboardMetrics, *ServiceError) {
	byCategory, err := s.products.CountByCategory(ctx)
	if err != nil {
		s.logger.Error("Failed to count products by category", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch dashboard metrics"}
	}
	var productCount int64
	for _, n := range byCategory {
		productCount += n
	}

	totalUnits, low, out, err := s.products.StockSummary(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate stock", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch dashboard metrics"}
	}

	orderCount, revenue, err := s.orders.SalesSummary(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate sales", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch dashboard metrics"}
	}

	return &models.DashboardMetrics{
		ProductCount:       productCount,
		ProductsByCategory: byCategory,
		Stock: models.StockOverview{
			TotalUnits:      totalUnits,
			LowStockCount:   low,
			OutOfStockCount: out,
		},
		Sales: models.SalesOverview{
			TotalOrders:  orderCount,
			TotalRevenue: revenue,
		},
	}, nil
}

// RevenueByDay returns per-day order revenue over the trailing window. days
// is clamped to [1, 365].
func (s *metricsServiceImpl) RevenueByDay(ctx context.Context, days int) ([]repository.DailyRevenue, *ServiceError) {
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := s.orders.RevenueByDay(ctx, since)
	if err != nil {
		s.logger.Error("Failed to aggregate revenue by day", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch revenue"}
	}
	return rows, nil
}
