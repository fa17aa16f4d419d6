package dto

import "time"

// DashboardRecentMovement línea reciente mostrada en el dashboard.
type DashboardRecentMovement struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Quantity  int                 `json:"quantity"`
	CreatedAt time.Time           `json:"createdAt"`
	Product   ProductBriefPayload `json:"product"`
	UserName  string              `json:"userName"`
}

// DashboardTopProduct producto con más movimientos.
type DashboardTopProduct struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Quantity       int    `json:"quantity"`
	MovementsCount int    `json:"movementsCount"`
}

// DashboardDayCount lotes registrados por día.
type DashboardDayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	TotalProducts      int                       `json:"totalProducts"`
	TotalQuantity      int                       `json:"totalQuantity"`
	LowStockCount      int                       `json:"lowStockCount"`
	TotalMovements     int                       `json:"totalMovements"`
	RecentMovements    []DashboardRecentMovement `json:"recentMovements"`
	MovementsByType    map[string]int            `json:"movementsByType"`
	TopProducts        []DashboardTopProduct     `json:"topProducts"`
	MovementsLast7Days []DashboardDayCount       `json:"movementsLast7Days"`
}
