package repository

import "time"

// RecentMovementRow línea de movimiento reciente para el dashboard.
type RecentMovementRow struct {
	LineID      string
	Type        string
	Quantity    int
	ProductName string
	ProductCode string
	UserName    string
	CreatedAt   time.Time
}

// TopProductRow producto con más líneas de movimiento.
type TopProductRow struct {
	ProductID      string
	Name           string
	Code           string
	Quantity       int
	MovementsCount int
}

// DayCountRow número de lotes registrados en un día.
type DayCountRow struct {
	Date  string // aaaa-mm-dd
	Count int
}

// AnalyticsRepository consultas de agregación para el dashboard.
type AnalyticsRepository interface {
	CountProducts() (int, error)
	SumQuantities() (int, error)
	CountLowStock() (int, error)
	CountBatches() (int, error)
	RecentLines(limit int) ([]RecentMovementRow, error)
	// BatchesByType cuenta lotes por tipo desde la fecha dada.
	BatchesByType(since time.Time) (map[string]int, error)
	TopProducts(limit int) ([]TopProductRow, error)
	// BatchesPerDay cuenta lotes por día para los últimos days días,
	// incluyendo días con cero.
	BatchesPerDay(days int) ([]DayCountRow, error)
}
