package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
)

type fakeLocationRepo struct {
	saved     []*entity.StorageLocation
	inProduct []string
}

func (r *fakeLocationRepo) Create(l *entity.StorageLocation) error {
	clone := *l
	r.saved = append(r.saved, &clone)
	return nil
}

func (r *fakeLocationRepo) GetByName(name string) (*entity.StorageLocation, error) {
	for _, l := range r.saved {
		if l.Name == name {
			clone := *l
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) ListNames() ([]string, error) {
	out := make([]string, 0, len(r.saved))
	for _, l := range r.saved {
		out = append(out, l.Name)
	}
	return out, nil
}

func (r *fakeLocationRepo) ProductLocations() ([]string, error) {
	return r.inProduct, nil
}

func TestLocationUseCase_ListUneYOrdenaEnEspanol(t *testing.T) {
	repo := &fakeLocationRepo{
		saved: []*entity.StorageLocation{
			{ID: "1", Name: "Bodega Central"},
			{ID: "2", Name: "Ática"},
		},
		// Ubicaciones escritas como texto libre en productos, con duplicados
		// y espacios sobrantes.
		inProduct: []string{"Vitrina 2", " Bodega Central ", "almacén técnico", ""},
	}
	uc := NewLocationUseCase(repo)

	resp, err := uc.List()
	require.NoError(t, err)

	// Sin duplicados ni vacíos, y el cotejo español intercala acentos donde
	// corresponde (Ática antes de Bodega, almacén antes de Ática por la a).
	assert.Equal(t, []string{"almacén técnico", "Ática", "Bodega Central", "Vitrina 2"}, resp.Locations)
}

func TestLocationUseCase_CreateRechazaNombreDuplicado(t *testing.T) {
	repo := &fakeLocationRepo{}
	uc := NewLocationUseCase(repo)

	name, err := uc.Create(dto.CreateLocationRequest{Name: "Bodega A"})
	require.NoError(t, err)
	assert.Equal(t, "Bodega A", name)

	_, err = uc.Create(dto.CreateLocationRequest{Name: "Bodega A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationUseCase_CreateRecortaEspacios(t *testing.T) {
	repo := &fakeLocationRepo{}
	uc := NewLocationUseCase(repo)

	name, err := uc.Create(dto.CreateLocationRequest{Name: "  Estante 4  "})
	require.NoError(t, err)
	assert.Equal(t, "Estante 4", name)
	require.Len(t, repo.saved, 1)
	assert.NotEmpty(t, repo.saved[0].ID)
}
