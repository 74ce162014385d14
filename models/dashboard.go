package models

type WholesalerOverview struct {
	TotalOrders      int64             `json:"totalOrders"`
	PendingOrders    int64             `json:"pendingOrders"`
	TotalRevenue     float64           `json:"totalRevenue"`
	TotalCustomers   int64             `json:"totalCustomers"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
}

type RetailerOverview struct {
	TotalOrders     int64   `json:"totalOrders"`
	TotalSpent      float64 `json:"totalSpent"`
	PendingPayments int64   `json:"pendingPayments"`
	RecentOrders    []Order `json:"recentOrders"`
}
