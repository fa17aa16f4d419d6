package inventory

import (
	"time"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain/codegen"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de lotes: listado con filtros, detalle por
// ID o código, y generación consultiva de códigos.
type MovementQueryUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewMovementQueryUseCase construye el caso de uso de consultas.
func NewMovementQueryUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productRepo: productRepo, userRepo: userRepo}
}

// ToBatchFilter traduce los filtros de la petición al filtro de repositorio.
// Las fechas vienen como YYYY-MM-DD; endDate es inclusivo hasta el final del
// día. No fija paginación.
func ToBatchFilter(in dto.ListMovementsRequest) repository.BatchFilter {
	filter := repository.BatchFilter{
		Type:   in.Type,
		Search: in.Search,
	}
	if in.StartDate != "" {
		if t, err := time.Parse("2006-01-02", in.StartDate); err == nil {
			filter.StartDate = &t
		}
	}
	if in.EndDate != "" {
		if t, err := time.Parse("2006-01-02", in.EndDate); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &end
		}
	}
	return filter
}

// List devuelve los lotes que cumplen los filtros, cada uno con sus líneas
// y creador, más la paginación.
func (uc *MovementQueryUseCase) List(in dto.ListMovementsRequest) (*dto.BatchListResponse, error) {
	in.DefaultPage()
	filter := ToBatchFilter(in)
	filter.Limit = in.Limit
	filter.Offset = in.Offset()

	batches, total, err := uc.movRepo.ListBatches(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.BatchListResponse{
		Movements:  make([]dto.BatchResponse, 0, len(batches)),
		Pagination: dto.NewPageResponse(in.Page, in.Limit, total),
	}
	for _, b := range batches {
		resp, err := uc.assemble(b)
		if err != nil {
			return nil, err
		}
		out.Movements = append(out.Movements, *resp)
	}
	return out, nil
}

// GetByID devuelve el lote completo, o nil si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.movRepo.GetBatchByID(id)
	if err != nil || batch == nil {
		return nil, err
	}
	return uc.assemble(batch)
}

// GetByCode devuelve el lote completo por código, o nil si no existe.
func (uc *MovementQueryUseCase) GetByCode(code string) (*dto.BatchResponse, error) {
	batch, err := uc.movRepo.GetBatchByCode(code)
	if err != nil || batch == nil {
		return nil, err
	}
	return uc.assemble(batch)
}

// GenerateCode propone el siguiente código MOV-NNNNNN libre. Consultivo:
// no reserva nada ni cambia estado persistido.
func (uc *MovementQueryUseCase) GenerateCode() (string, error) {
	return codegen.Sequential(uc.movRepo, codegen.PrefixMovement)
}

func (uc *MovementQueryUseCase) assemble(batch *entity.MovementBatch) (*dto.BatchResponse, error) {
	lines, err := uc.movRepo.ListLines(batch.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.BatchResponse{
		ID:            batch.ID,
		Code:          batch.Code,
		Type:          batch.Type,
		TotalQuantity: batch.TotalQuantity,
		Reason:        batch.Reason,
		Notes:         batch.Notes,
		CreatedAt:     batch.CreatedAt,
		Movements:     make([]dto.MovementLineResponse, 0, len(lines)),
	}
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		brief := dto.ProductBriefPayload{ID: line.ProductID}
		if product != nil {
			brief = dto.ProductBriefPayload{
				ID:       product.ID,
				Name:     product.Name,
				Code:     product.Code,
				Quantity: product.Quantity,
				Location: product.Location,
			}
		}
		resp.Movements = append(resp.Movements, dto.MovementLineResponse{
			ID:       line.ID,
			Quantity: line.Quantity,
			Product:  brief,
		})
	}
	user, err := uc.userRepo.GetByID(batch.UserID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		resp.User = dto.UserBriefPayload{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return resp, nil
}
