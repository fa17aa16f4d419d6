package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/application/inventory"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
	apphttp "github.com/chcomputer/almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria — lo justo para ejercitar el handler de movimientos
// a través de HTTP: registrar lotes, consultar stock y resolver el usuario.
// ──────────────────────────────────────────────────────────────────────────────

type stubStore struct {
	products map[string]*entity.Product
	batches  []*entity.MovementBatch
	lines    []*entity.Movement
	users    map[string]*entity.User
}

type stubMovementRepo struct{ s *stubStore }

func (r *stubMovementRepo) CreateBatch(b *entity.MovementBatch) error {
	for _, existing := range r.s.batches {
		if existing.Code == b.Code {
			return domain.ErrDuplicate
		}
	}
	clone := *b
	r.s.batches = append(r.s.batches, &clone)
	return nil
}

func (r *stubMovementRepo) CreateLine(line *entity.Movement) error {
	clone := *line
	r.s.lines = append(r.s.lines, &clone)
	return nil
}

func (r *stubMovementRepo) GetBatchByID(id string) (*entity.MovementBatch, error) {
	for _, b := range r.s.batches {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubMovementRepo) GetBatchByCode(code string) (*entity.MovementBatch, error) {
	for _, b := range r.s.batches {
		if b.Code == code {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubMovementRepo) ListBatches(_ repository.BatchFilter) ([]*entity.MovementBatch, int, error) {
	return r.s.batches, len(r.s.batches), nil
}

func (r *stubMovementRepo) ListLines(batchID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, l := range r.s.lines {
		if l.BatchID == batchID {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListForReport(_ repository.BatchFilter) ([]repository.MovementReportRow, error) {
	return nil, nil
}

func (r *stubMovementRepo) MaxSequence(prefix string) (int, error) {
	max := 0
	for _, b := range r.s.batches {
		var n int
		if rest, ok := strings.CutPrefix(b.Code, prefix+"-"); ok {
			for _, ch := range rest {
				if ch < '0' || ch > '9' {
					n = 0
					break
				}
				n = n*10 + int(ch-'0')
			}
			if n > max {
				max = n
			}
		}
	}
	return max, nil
}

func (r *stubMovementRepo) Exists(code string) (bool, error) {
	for _, b := range r.s.batches {
		if b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

type stubProductRepo struct{ s *stubStore }

func (r *stubProductRepo) Create(_ *entity.Product) error { return nil }

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) GetByCode(_ string) (*entity.Product, error) { return nil, nil }

func (r *stubProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *stubProductRepo) AdjustQuantity(id string, delta int) error {
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.Quantity += delta
	return nil
}

func (r *stubProductRepo) Update(_ *entity.Product) error { return nil }

func (r *stubProductRepo) List(_ repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *stubProductRepo) ListForReport() ([]repository.ProductReportRow, error) { return nil, nil }

func (r *stubProductRepo) Delete(_ string) error { return nil }

func (r *stubProductRepo) MaxSequence(_ string) (int, error) { return 0, nil }

func (r *stubProductRepo) Exists(_ string) (bool, error) { return false, nil }

type stubUserRepo struct{ s *stubStore }

func (r *stubUserRepo) Create(_ *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(_ string) (*entity.User, error) { return nil, nil }

func (r *stubUserRepo) List() ([]repository.UserWithBatchCount, error) { return nil, nil }

func (r *stubUserRepo) Update(_ *entity.User) error { return nil }

func (r *stubUserRepo) Delete(_ string) error { return nil }

// stubTxRunner ejecuta la función directamente; si falla, restaura el estado
// previo del store para simular el rollback.
type stubTxRunner struct{ s *stubStore }

func (tx *stubTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	quantities := make(map[string]int, len(tx.s.products))
	for id, p := range tx.s.products {
		quantities[id] = p.Quantity
	}
	batches, lines := len(tx.s.batches), len(tx.s.lines)

	if err := fn(&stubMovementRepo{s: tx.s}, &stubProductRepo{s: tx.s}); err != nil {
		for id, q := range quantities {
			tx.s.products[id].Quantity = q
		}
		tx.s.batches = tx.s.batches[:batches]
		tx.s.lines = tx.s.lines[:lines]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

const movTestUserID = "00000000-0000-0000-0000-00000000000a"

func newMovementTestApp(t *testing.T) (*fiber.App, *stubStore) {
	t.Helper()
	store := &stubStore{
		products: map[string]*entity.Product{
			"p1": {ID: "p1", Code: "PROD-000001", Name: "Mouse inalámbrico", Quantity: 10, MinStock: 2, Location: "Bodega A"},
		},
		users: map[string]*entity.User{
			movTestUserID: {ID: movTestUserID, Name: "Laura P.", Email: "laura@chcomputer.co", Role: entity.RoleEmployee, Active: true},
		},
	}
	movRepo := &stubMovementRepo{s: store}
	productRepo := &stubProductRepo{s: store}
	userRepo := &stubUserRepo{s: store}

	apply := inventory.NewApplyBatchUseCase(&stubTxRunner{s: store}, productRepo, userRepo, nil)
	queries := inventory.NewMovementQueryUseCase(movRepo, productRepo, userRepo)
	handler := apphttp.NewMovementHandler(apply, queries)

	app := fiber.New()
	// Sustituye AuthMiddleware: inyecta el usuario autenticado directamente.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, movTestUserID)
		c.Locals(apphttp.LocalRole, entity.RoleEmployee)
		return c.Next()
	})
	app.Post("/api/movements", handler.Create)
	app.Post("/api/movements/batch", handler.CreateBatch)
	app.Get("/api/movements", handler.List)
	app.Get("/api/movements/:id", handler.GetByID)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementHandler_CreateEntrada(t *testing.T) {
	app, store := newMovementTestApp(t)

	resp := postJSON(t, app, "/api/movements", dto.CreateMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  5,
		Reason:    "compra a proveedor",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.BatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MOV-000001", body.Code)
	assert.Equal(t, entity.MovementTypeEntrada, body.Type)
	assert.Equal(t, 5, body.TotalQuantity)
	require.Len(t, body.Movements, 1)
	assert.Equal(t, "Laura P.", body.User.Name)

	assert.Equal(t, 15, store.products["p1"].Quantity,
		"la ENTRADA debe sumar al stock")
}

func TestMovementHandler_SalidaSinStock_Retorna400ConAvailable(t *testing.T) {
	app, store := newMovementTestApp(t)

	resp := postJSON(t, app, "/api/movements", dto.CreateMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeSalida,
		Quantity:  25,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Available, "la respuesta debe informar el stock disponible")
	assert.Equal(t, 10, *body.Available)

	assert.Equal(t, 10, store.products["p1"].Quantity,
		"el stock no debe cambiar cuando el lote falla")
	assert.Empty(t, store.batches, "no debe quedar ningún lote registrado")
}

func TestMovementHandler_BatchTodoONada(t *testing.T) {
	app, store := newMovementTestApp(t)

	resp := postJSON(t, app, "/api/movements/batch", dto.CreateBatchRequest{
		Type: entity.MovementTypeSalida,
		Movements: []dto.MovementItemRequest{
			{ProductID: "p1", Quantity: 6},
			{ProductID: "p1", Quantity: 6}, // 12 > 10 en conjunto
		},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 10, store.products["p1"].Quantity)
	assert.Empty(t, store.lines)
}

func TestMovementHandler_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := newMovementTestApp(t)

	resp := postJSON(t, app, "/api/movements", dto.CreateMovementRequest{
		ProductID: "no-existe",
		Type:      entity.MovementTypeEntrada,
		Quantity:  1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovementHandler_BodyInvalido_Retorna400(t *testing.T) {
	app, _ := newMovementTestApp(t)

	resp := postJSON(t, app, "/api/movements", dto.CreateMovementRequest{
		ProductID: "p1",
		Type:      "TRASLADO", // tipo no soportado
		Quantity:  1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovementHandler_GetByID(t *testing.T) {
	app, store := newMovementTestApp(t)

	created := postJSON(t, app, "/api/movements", dto.CreateMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  3,
	})
	created.Body.Close()
	require.Len(t, store.batches, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/movements/"+store.batches[0].ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.BatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, store.batches[0].Code, body.Code)
	require.Len(t, body.Movements, 1)
	assert.Equal(t, "PROD-000001", body.Movements[0].Product.Code)
}

func TestMovementHandler_GetByIDInexistente_Retorna404(t *testing.T) {
	app, _ := newMovementTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movements/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
