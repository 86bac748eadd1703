package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubcj79/inventory-managment-system/internal/application/usecase"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
	apphttp "github.com/githubcj79/inventory-managment-system/internal/interfaces/http"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: una app Fiber mínima con las rutas del catálogo sobre
// repositorios en memoria, para verificar el mapeo error → status HTTP.
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	byID map[string]*entity.Product
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func (s *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	s.byID[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := s.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *stubProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range s.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	s.byID[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(s.byID))
	for _, p := range s.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubProductRepo) Search(_ context.Context, _ string) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

// stubStockRepo solo responde el conteo referencial; el resto no se usa aquí.
type stubStockRepo struct {
	repository.StockRepository
	counts map[string]int64
}

func (s *stubStockRepo) CountByProduct(_ context.Context, productID string) (int64, error) {
	return s.counts[productID], nil
}

func buildCatalogApp() (*fiber.App, *stubStockRepo) {
	repo := &stubProductRepo{byID: map[string]*entity.Product{}}
	stock := &stubStockRepo{counts: map[string]int64{}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	handler := apphttp.NewProductHandler(usecase.NewProductUseCase(repo, stock), log)

	app := fiber.New()
	products := app.Group("/api/products")
	products.Post("/", handler.Create)
	products.Get("/:id", handler.GetByID)
	products.Delete("/:id", handler.Delete)
	return app, stock
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func validProductBody(sku string) map[string]interface{} {
	return map[string]interface{}{
		"name":        "Taladro",
		"description": "Taladro percutor 650W",
		"category":    "herramientas",
		"price":       99.90,
		"sku":         sku,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Creación válida → 201 con el id nuevo.
func TestProductHandler_Create_Retorna201(t *testing.T) {
	app, _ := buildCatalogApp()

	resp := postJSON(t, app, "/api/products/", validProductBody("STL001"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["id"], "la respuesta debe incluir el id creado")
}

// Caso 2: SKU duplicado → 409 DUPLICATE_SKU.
func TestProductHandler_Create_SKUDuplicado_Retorna409(t *testing.T) {
	app, _ := buildCatalogApp()

	resp := postJSON(t, app, "/api/products/", validProductBody("STL001"))
	resp.Body.Close()

	resp = postJSON(t, app, "/api/products/", validProductBody("STL001"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "DUPLICATE_SKU", body["code"])
}

// Caso 3: Campos faltantes → 400 MISSING_FIELD nombrando los campos.
func TestProductHandler_Create_CamposFaltantes_Retorna400(t *testing.T) {
	app, _ := buildCatalogApp()

	resp := postJSON(t, app, "/api/products/", map[string]interface{}{"name": "Solo nombre"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_FIELD", body["code"])
	assert.Contains(t, body["message"], "sku")
}

// Caso 4: id malformado → 400; id válido ausente → 404.
func TestProductHandler_GetByID_InvalidoVsAusente(t *testing.T) {
	app, _ := buildCatalogApp()

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decodeBody(t, resp)["code"])

	req = httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.New().String(), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

// Caso 5: Eliminar un producto con inventario → 409 HAS_INVENTORY.
func TestProductHandler_Delete_ConInventario_Retorna409(t *testing.T) {
	app, stock := buildCatalogApp()

	resp := postJSON(t, app, "/api/products/", validProductBody("STL002"))
	id := decodeBody(t, resp)["id"].(string)
	resp.Body.Close()
	stock.counts[id] = 1

	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "HAS_INVENTORY", decodeBody(t, resp)["code"])
}
