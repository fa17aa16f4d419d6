package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de consultas del dashboard.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) scalar(query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard query: %w", err)
	}
	return n, nil
}

// CountProducts número total de productos.
func (r *AnalyticsRepo) CountProducts() (int, error) {
	return r.scalar(`SELECT COUNT(*) FROM products`)
}

// SumQuantities unidades totales en stock.
func (r *AnalyticsRepo) SumQuantities() (int, error) {
	return r.scalar(`SELECT COALESCE(SUM(quantity), 0) FROM products`)
}

// CountLowStock productos en o por debajo de su stock mínimo.
func (r *AnalyticsRepo) CountLowStock() (int, error) {
	return r.scalar(`SELECT COUNT(*) FROM products WHERE quantity <= min_stock`)
}

// CountBatches número total de lotes registrados.
func (r *AnalyticsRepo) CountBatches() (int, error) {
	return r.scalar(`SELECT COUNT(*) FROM movement_batches`)
}

// RecentLines últimas líneas de movimiento con producto y usuario.
func (r *AnalyticsRepo) RecentLines(limit int) ([]repository.RecentMovementRow, error) {
	query := `
		SELECT m.id, b.type, m.quantity, p.name, p.code, COALESCE(u.name, ''), b.created_at
		FROM movements m
		JOIN movement_batches b ON b.id = m.batch_id
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.created_at DESC, m.seq DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	defer rows.Close()

	var out []repository.RecentMovementRow
	for rows.Next() {
		var row repository.RecentMovementRow
		if err := rows.Scan(&row.LineID, &row.Type, &row.Quantity, &row.ProductName,
			&row.ProductCode, &row.UserName, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent movement: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// BatchesByType cuenta lotes por tipo desde la fecha dada.
func (r *AnalyticsRepo) BatchesByType(since time.Time) (map[string]int, error) {
	query := `
		SELECT type, COUNT(*)
		FROM movement_batches
		WHERE created_at >= $1
		GROUP BY type`
	rows, err := r.q.Query(context.Background(), query, since)
	if err != nil {
		return nil, fmt.Errorf("batches by type: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("scan batch count: %w", err)
		}
		out[typ] = count
	}
	return out, rows.Err()
}

// TopProducts productos con más líneas de movimiento.
func (r *AnalyticsRepo) TopProducts(limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT p.id, p.name, p.code, p.quantity, COUNT(m.id) AS movements_count
		FROM products p
		JOIN movements m ON m.product_id = p.id
		GROUP BY p.id
		ORDER BY movements_count DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Code, &row.Quantity, &row.MovementsCount); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// BatchesPerDay lotes por día para los últimos days días, con días en cero
// incluidos (generate_series).
func (r *AnalyticsRepo) BatchesPerDay(days int) ([]repository.DayCountRow, error) {
	query := `
		SELECT to_char(d.day, 'YYYY-MM-DD'), COUNT(b.id)
		FROM generate_series(
			CURRENT_DATE - ($1::int - 1) * INTERVAL '1 day',
			CURRENT_DATE,
			INTERVAL '1 day'
		) AS d(day)
		LEFT JOIN movement_batches b ON b.created_at::date = d.day::date
		GROUP BY d.day
		ORDER BY d.day ASC`
	rows, err := r.q.Query(context.Background(), query, days)
	if err != nil {
		return nil, fmt.Errorf("batches per day: %w", err)
	}
	defer rows.Close()

	var out []repository.DayCountRow
	for rows.Next() {
		var row repository.DayCountRow
		if err := rows.Scan(&row.Date, &row.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
