package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/codegen"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// Reintentos cuando un código generado colisiona al insertar (el generador
// es consultivo, no reserva).
const maxCodeAttempts = 3

// BatchItem una línea solicitada: producto y cantidad (siempre positiva).
type BatchItem struct {
	ProductID string
	Quantity  int
}

// BatchInput entrada para registrar un lote de movimientos.
type BatchInput struct {
	Items  []BatchItem
	Type   string // ENTRADA | SALIDA
	Reason string
	Notes  string
	Code   string // opcional; vacío = generar
	UserID string
}

// ApplyBatchUseCase registra lotes de movimientos de forma transaccional:
// valida y aplica el efecto neto sobre el stock con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Un lote solo conoce dos estados:
// inexistente o confirmado con todos sus efectos.
type ApplyBatchUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	notifier    LowStockNotifier // puede ser nil
}

// NewApplyBatchUseCase construye el motor. El repositorio de movimientos lo
// entrega el TxRunner ligado a cada transacción. notifier es opcional
// (nil = sin alertas de stock bajo).
func NewApplyBatchUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notifier LowStockNotifier,
) *ApplyBatchUseCase {
	return &ApplyBatchUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// ApplyBatch valida la entrada, abre una transacción y aplica cada línea en
// orden contra el stock persistido actual (cada línea relee la fila ya
// bloqueada, así dos líneas del mismo producto componen correctamente).
// Cualquier fallo hace rollback completo: ningún lote, línea ni producto
// queda modificado.
func (uc *ApplyBatchUseCase) ApplyBatch(ctx context.Context, input BatchInput) (*dto.BatchResponse, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	suppliedCode := strings.TrimSpace(input.Code)
	total := 0
	for _, item := range input.Items {
		total += item.Quantity
	}
	now := time.Now()

	// El creador no cambia dentro de la transacción; leerlo antes evita
	// cualquier lectura posterior al commit.
	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}

	var batch *entity.MovementBatch
	var lines []dto.MovementLineResponse
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := &entity.MovementBatch{
			ID:            uuid.New().String(),
			Code:          suppliedCode, // vacío = generar dentro de la tx
			Type:          input.Type,
			TotalQuantity: total,
			Reason:        input.Reason,
			Notes:         input.Notes,
			UserID:        input.UserID,
			CreatedAt:     now,
		}

		err := uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
		) error {
			applied, err := uc.applyInTx(movRepo, productRepo, candidate, input)
			if err != nil {
				return err
			}
			lines = applied
			return nil
		})
		if err == nil {
			batch = candidate
			break
		}
		// Colisión de código generado: el candidato dejó de estar libre entre
		// la consulta y el insert. Reintentar con uno nuevo.
		if errors.Is(err, domain.ErrDuplicate) && suppliedCode == "" && attempt < maxCodeAttempts-1 {
			continue
		}
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrDuplicate
	}

	// La respuesta se arma solo con datos capturados dentro de la
	// transacción: un lote confirmado nunca se reporta como fallo.
	resp := &dto.BatchResponse{
		ID:            batch.ID,
		Code:          batch.Code,
		Type:          batch.Type,
		TotalQuantity: batch.TotalQuantity,
		Reason:        batch.Reason,
		Notes:         batch.Notes,
		CreatedAt:     batch.CreatedAt,
		Movements:     lines,
	}
	if user != nil {
		resp.User = dto.UserBriefPayload{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	if input.Type == entity.MovementTypeSalida {
		uc.notifyLowStock(ctx, input.Items)
	}
	return resp, nil
}

// validateInput rechaza la entrada antes de tocar la persistencia.
func (uc *ApplyBatchUseCase) validateInput(input BatchInput) error {
	if !entity.ValidMovementType(input.Type) {
		return fmt.Errorf("%w: el tipo de movimiento es obligatorio (ENTRADA o SALIDA)", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: se requiere al menos un movimiento", domain.ErrInvalidInput)
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: el movimiento #%d está incompleto", domain.ErrInvalidInput, i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: la cantidad del movimiento #%d es inválida", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// applyInTx genera el código si hace falta, crea el lote y procesa las
// líneas en el orden recibido, cada una contra la cantidad persistida
// vigente (GetForUpdate bloquea la fila y la relee dentro de la misma
// transacción). Retorna las líneas ya armadas para la respuesta, con la
// cantidad del producto después de cada ajuste.
func (uc *ApplyBatchUseCase) applyInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	batch *entity.MovementBatch,
	input BatchInput,
) ([]dto.MovementLineResponse, error) {
	if batch.Code == "" {
		code, err := codegen.Sequential(movRepo, codegen.PrefixMovement)
		if err != nil {
			return nil, err
		}
		batch.Code = code
	}
	if err := movRepo.CreateBatch(batch); err != nil {
		return nil, err
	}
	lines := make([]dto.MovementLineResponse, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		delta := item.Quantity
		if input.Type == entity.MovementTypeSalida {
			if product.Quantity < item.Quantity {
				return nil, &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Quantity,
					Requested:   item.Quantity,
				}
			}
			delta = -item.Quantity
		}
		if err := productRepo.AdjustQuantity(product.ID, delta); err != nil {
			return nil, err
		}
		product.Quantity += delta
		line := &entity.Movement{
			ID:        uuid.New().String(),
			BatchID:   batch.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if err := movRepo.CreateLine(line); err != nil {
			return nil, err
		}
		lines = append(lines, dto.MovementLineResponse{
			ID:       line.ID,
			Quantity: line.Quantity,
			Product: dto.ProductBriefPayload{
				ID:       product.ID,
				Name:     product.Name,
				Code:     product.Code,
				Quantity: product.Quantity,
				Location: product.Location,
			},
		})
	}
	return lines, nil
}

// notifyLowStock encola alertas para los productos que quedaron en o por
// debajo de su stock mínimo. Best-effort: fuera de la transacción, los
// errores solo se registran.
func (uc *ApplyBatchUseCase) notifyLowStock(ctx context.Context, items []BatchItem) {
	if uc.notifier == nil {
		return
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil || !product.LowStock() {
			continue
		}
		if err := uc.notifier.NotifyLowStock(ctx, product); err != nil {
			log.Warn().Err(err).Str("product_id", product.ID).Msg("no se pudo encolar alerta de stock bajo")
		}
	}
}
