package usecase

import (
	"errors"
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

// Reintentos al insertar con un código generado que colisionó.
const maxProductCodeAttempts = 3

// ProductUseCase casos de uso CRUD para productos. Quantity solo cambia en
// el alta (stock inicial) y por movimientos; Update nunca la toca.
type ProductUseCase struct {
	repo         repository.ProductRepository
	brandRepo    repository.BrandRepository
	modelRepo    repository.ModelRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	modelRepo repository.ModelRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, brandRepo: brandRepo, modelRepo: modelRepo, supplierRepo: supplierRepo}
}

// Create crea un producto. Si no trae código se genera PROD-NNNNNN.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(in.BrandID, in.ModelID, in.SupplierID); err != nil {
		return nil, err
	}

	suppliedCode := strings.TrimSpace(in.Code)
	now := time.Now()
	for attempt := 0; attempt < maxProductCodeAttempts; attempt++ {
		code := suppliedCode
		if code == "" {
			generated, err := codegen.Sequential(uc.repo, codegen.PrefixProduct)
			if err != nil {
				return nil, err
			}
			code = generated
		}
		product := &entity.Product{
			ID:           uuid.New().String(),
			Code:         code,
			Name:         in.Name,
			Description:  in.Description,
			SerialNumber: in.SerialNumber,
			Quantity:     in.Quantity,
			MinStock:     in.MinStock,
			Location:     in.Location,
			Photo:        in.Photo,
			BrandID:      in.BrandID,
			ModelID:      in.ModelID,
			SupplierID:   in.SupplierID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err := uc.repo.Create(product)
		if err == nil {
			return toProductResponse(product), nil
		}
		if errors.Is(err, domain.ErrDuplicate) && suppliedCode == "" && attempt < maxProductCodeAttempts-1 {
			continue
		}
		return nil, err
	}
	return nil, domain.ErrDuplicate
}

// GetByID obtiene un producto por ID, nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No acepta quantity ni code: el stock se
// mueve con movimientos y el código es inmutable.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := uc.checkReferences(in.BrandID, in.ModelID, in.SupplierID); err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Description = in.Description
	product.SerialNumber = in.SerialNumber
	product.MinStock = in.MinStock
	product.Location = in.Location
	product.Photo = in.Photo
	product.BrandID = in.BrandID
	product.ModelID = in.ModelID
	product.SupplierID = in.SupplierID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda y paginación.
func (uc *ProductUseCase) List(in dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	products, total, err := uc.repo.List(repository.ProductFilter{
		Search:     in.Search,
		SupplierID: in.SupplierID,
		Location:   in.Location,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Products:   make([]dto.ProductResponse, 0, len(products)),
		Pagination: dto.NewPageResponse(in.Page, in.Limit, total),
	}
	for _, p := range products {
		out.Products = append(out.Products, *toProductResponse(p))
	}
	return out, nil
}

// ListLowStock devuelve los productos en o por debajo de su stock mínimo.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. Falla con ErrConflict si tiene movimientos.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// GenerateCode propone el siguiente código PROD-NNNNNN libre (consultivo).
func (uc *ProductUseCase) GenerateCode() (string, error) {
	return codegen.Sequential(uc.repo, codegen.PrefixProduct)
}

func (uc *ProductUseCase) checkReferences(brandID, modelID, supplierID string) error {
	brand, err := uc.brandRepo.GetByID(brandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("%w: la marca indicada no existe", domain.ErrInvalidInput)
	}
	model, err := uc.modelRepo.GetByID(modelID)
	if err != nil {
		return err
	}
	if model == nil {
		return fmt.Errorf("%w: el modelo indicado no existe", domain.ErrInvalidInput)
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("%w: el proveedor indicado no existe", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		SerialNumber: p.SerialNumber,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		Location:     p.Location,
		Photo:        p.Photo,
		LowStock:     p.LowStock(),
		BrandID:      p.BrandID,
		ModelID:      p.ModelID,
		SupplierID:   p.SupplierID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
