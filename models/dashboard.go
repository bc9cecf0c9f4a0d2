package models

// StockOverview summarizes inventory health for the admin dashboard.
type StockOverview struct {
	TotalUnits      int64 `json:"total_units"`
	LowStockCount   int64 `json:"low_stock_count"`
	OutOfStockCount int64 `json:"out_of_stock_count"`
}

// SalesOverview summarizes committed orders for the admin dashboard.
type SalesOverview struct {
	TotalOrders  int64 `json:"total_orders"`
	TotalRevenue int64 `json:"total_revenue"`
}

// DashboardMetrics is the admin dashboard payload.
type DashboardMetrics struct {
	ProductCount       int64            `json:"product_count"`
	ProductsByCategory map[string]int64 `json:"products_by_category"`
	Stock              StockOverview    `json:"stock"`
	Sales              SalesOverview    `json:"sales"`
}
