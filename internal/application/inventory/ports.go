package inventory

import (
	"context"

	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o todo se persiste (lote, líneas, ajustes de stock) o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LowStockNotifier encola una alerta para un producto que cayó a su stock
// mínimo. Es un colaborador best-effort: se invoca después del commit y sus
// fallos nunca afectan al movimiento ya registrado.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, product *entity.Product) error
}
