package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/codegen"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// ModelUseCase casos de uso CRUD para modelos de equipo.
type ModelUseCase struct {
	repo      repository.ModelRepository
	brandRepo repository.BrandRepository
}

// NewModelUseCase construye el caso de uso.
func NewModelUseCase(repo repository.ModelRepository, brandRepo repository.BrandRepository) *ModelUseCase {
	return &ModelUseCase{repo: repo, brandRepo: brandRepo}
}

// Create crea un modelo, opcionalmente asociado a una marca existente. Si no
// trae código se genera MOD-XXXX aleatorio.
func (uc *ModelUseCase) Create(in dto.CreateModelRequest) (*dto.ModelResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.BrandID != "" {
		brand, err := uc.brandRepo.GetByID(in.BrandID)
		if err != nil {
			return nil, err
		}
		if brand == nil {
			return nil, fmt.Errorf("%w: la marca indicada no existe", domain.ErrInvalidInput)
		}
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		var err error
		code, err = codegen.Random(uc.repo, codegen.PrefixModel)
		if err != nil {
			return nil, err
		}
	}
	model := &entity.Model{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      code,
		BrandID:   in.BrandID,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(model); err != nil {
		return nil, err
	}
	return toModelResponse(model), nil
}

// GenerateCode propone un código MOD-XXXX libre. Consultivo: no reserva.
func (uc *ModelUseCase) GenerateCode() (string, error) {
	return codegen.Random(uc.repo, codegen.PrefixModel)
}

// List devuelve todos los modelos.
func (uc *ModelUseCase) List() ([]dto.ModelResponse, error) {
	models, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, *toModelResponse(m))
	}
	return out, nil
}

// Update renombra un modelo o lo reasocia a otra marca.
func (uc *ModelUseCase) Update(id string, in dto.CreateModelRequest) (*dto.ModelResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	model, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, nil
	}
	if in.BrandID != "" && in.BrandID != model.BrandID {
		brand, err := uc.brandRepo.GetByID(in.BrandID)
		if err != nil {
			return nil, err
		}
		if brand == nil {
			return nil, fmt.Errorf("%w: la marca indicada no existe", domain.ErrInvalidInput)
		}
	}
	model.Name = in.Name
	model.BrandID = in.BrandID
	if err := uc.repo.Update(model); err != nil {
		return nil, err
	}
	return toModelResponse(model), nil
}

// Delete elimina un modelo si ningún producto lo usa.
func (uc *ModelUseCase) Delete(id string) error {
	model, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if model == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.repo.HasProducts(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toModelResponse(m *entity.Model) *dto.ModelResponse {
	return &dto.ModelResponse{ID: m.ID, Name: m.Name, Code: m.Code, BrandID: m.BrandID, CreatedAt: m.CreatedAt}
}
