package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/codegen"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// BrandUseCase casos de uso CRUD para marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create crea una marca. El nombre es único; si no trae código se genera
// BRD-XXXX aleatorio.
func (uc *BrandUseCase) Create(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code, err = codegen.Random(uc.repo, codegen.PrefixBrand)
		if err != nil {
			return nil, err
		}
	}
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      code,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GenerateCode propone un código BRD-XXXX libre. Consultivo: no reserva.
func (uc *BrandUseCase) GenerateCode() (string, error) {
	return codegen.Random(uc.repo, codegen.PrefixBrand)
}

// List devuelve todas las marcas ordenadas por nombre.
func (uc *BrandUseCase) List() ([]dto.BrandResponse, error) {
	brands, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// Update renombra una marca.
func (uc *BrandUseCase) Update(id string, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	brand, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, nil
	}
	brand.Name = in.Name
	if err := uc.repo.Update(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// Delete elimina una marca si ningún producto la usa.
func (uc *BrandUseCase) Delete(id string) error {
	brand, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
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

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, Code: b.Code, CreatedAt: b.CreatedAt}
}
