package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second

	recentLimit     = 10
	topProductLimit = 5
	trendDays       = 7
)

// StatsCache cache opcional para las estadísticas del dashboard. Miss se
// señala con found=false, no con error.
type StatsCache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// DashboardUseCase arma las estadísticas del dashboard a partir de las
// consultas de agregación, con cache corta para no castigar la BD en cada
// carga de la pantalla principal.
type DashboardUseCase struct {
	repo  repository.AnalyticsRepository
	cache StatsCache // puede ser nil
}

// NewDashboardUseCase construye el caso de uso. cache es opcional.
func NewDashboardUseCase(repo repository.AnalyticsRepository, cache StatsCache) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache}
}

// Stats devuelve las estadísticas, de cache si están frescas. Los fallos de
// cache solo se registran: la BD siempre puede responder.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if uc.cache != nil {
		data, found, err := uc.cache.Get(ctx, statsCacheKey)
		if err != nil {
			log.Warn().Err(err).Msg("cache de dashboard no disponible")
		} else if found {
			var cached dto.DashboardStatsResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := uc.build()
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := uc.cache.Set(ctx, statsCacheKey, data, statsCacheTTL); err != nil {
				log.Warn().Err(err).Msg("no se pudo guardar stats en cache")
			}
		}
	}
	return stats, nil
}

func (uc *DashboardUseCase) build() (*dto.DashboardStatsResponse, error) {
	totalProducts, err := uc.repo.CountProducts()
	if err != nil {
		return nil, err
	}
	totalQuantity, err := uc.repo.SumQuantities()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.CountLowStock()
	if err != nil {
		return nil, err
	}
	totalBatches, err := uc.repo.CountBatches()
	if err != nil {
		return nil, err
	}
	recent, err := uc.repo.RecentLines(recentLimit)
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, -1, 0)
	byType, err := uc.repo.BatchesByType(since)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopProducts(topProductLimit)
	if err != nil {
		return nil, err
	}
	perDay, err := uc.repo.BatchesPerDay(trendDays)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStatsResponse{
		TotalProducts:      totalProducts,
		TotalQuantity:      totalQuantity,
		LowStockCount:      lowStock,
		TotalMovements:     totalBatches,
		RecentMovements:    make([]dto.DashboardRecentMovement, 0, len(recent)),
		MovementsByType:    byType,
		TopProducts:        make([]dto.DashboardTopProduct, 0, len(top)),
		MovementsLast7Days: make([]dto.DashboardDayCount, 0, len(perDay)),
	}
	for _, r := range recent {
		stats.RecentMovements = append(stats.RecentMovements, dto.DashboardRecentMovement{
			ID:        r.LineID,
			Type:      r.Type,
			Quantity:  r.Quantity,
			CreatedAt: r.CreatedAt,
			Product:   dto.ProductBriefPayload{Name: r.ProductName, Code: r.ProductCode},
			UserName:  r.UserName,
		})
	}
	for _, t := range top {
		stats.TopProducts = append(stats.TopProducts, dto.DashboardTopProduct{
			ID:             t.ProductID,
			Name:           t.Name,
			Code:           t.Code,
			Quantity:       t.Quantity,
			MovementsCount: t.MovementsCount,
		})
	}
	for _, d := range perDay {
		stats.MovementsLast7Days = append(stats.MovementsLast7Days, dto.DashboardDayCount{Date: d.Date, Count: d.Count})
	}
	return stats, nil
}
