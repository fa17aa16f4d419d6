package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// LocationUseCase gestiona ubicaciones de almacenamiento. El listado une las
// ubicaciones guardadas con las escritas como texto libre en productos,
// deduplicadas y ordenadas con cotejo español (Bodega Á junto a Bodega A).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create guarda una ubicación con nombre propio. El nombre es único.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (string, error) {
	if err := dto.Validate(in); err != nil {
		return "", err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrDuplicate
	}
	location := &entity.StorageLocation{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return "", err
	}
	return location.Name, nil
}

// List devuelve los nombres de ubicación: guardadas más las usadas en
// productos, sin duplicados ni vacíos.
func (uc *LocationUseCase) List() (*dto.LocationListResponse, error) {
	saved, err := uc.repo.ListNames()
	if err != nil {
		return nil, err
	}
	used, err := uc.repo.ProductLocations()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(saved)+len(used))
	names := make([]string, 0, len(saved)+len(used))
	for _, name := range append(saved, used...) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.Slice(names, func(i, j int) bool {
		return col.CompareString(names[i], names[j]) < 0
	})
	return &dto.LocationListResponse{Locations: names}, nil
}
