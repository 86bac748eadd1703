package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubcj79/inventory-managment-system/internal/application/inventory"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
	apphttp "github.com/githubcj79/inventory-managment-system/internal/interfaces/http"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// stubLevelStockRepo responde solo la lectura puntual de stock; el resto no se usa aquí.
type stubLevelStockRepo struct {
	repository.StockRepository
	quantity int64
}

func (s *stubLevelStockRepo) Get(_ context.Context, productID, storeID string) (*entity.StockRecord, error) {
	return &entity.StockRecord{ProductID: productID, StoreID: storeID, Quantity: s.quantity}, nil
}

func buildValidateApp(quantity int64) (*fiber.App, string) {
	products := &stubProductRepo{byID: map[string]*entity.Product{}}
	id := uuid.New().String()
	products.byID[id] = &entity.Product{ID: id, SKU: "STL080", Name: "Producto STL080"}
	stock := &stubLevelStockRepo{quantity: quantity}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := inventory.NewInventoryUseCase(nil, products, stock, nil, inventory.Config{}, log)
	handler := apphttp.NewInventoryHandler(uc, log)

	app := fiber.New()
	app.Get("/api/inventory/validate", handler.Validate)
	return app, id
}

// Caso 1: Umbrales presentes → clasificación con los valores entregados.
func TestInventoryHandler_Validate_Retorna200(t *testing.T) {
	app, id := buildValidateApp(80)

	req := httptest.NewRequest(http.MethodGet,
		"/api/inventory/validate?product_id="+id+"&min=5&max=100", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "normal", body["status"])
	assert.Equal(t, float64(80), body["quantity"])
}

// Caso 2: min o max ausentes → 400 MISSING_FIELD. Con un default implícito de 0,
// omitir max clasificaría 80 unidades como excess contra un máximo que nadie pidió.
func TestInventoryHandler_Validate_UmbralesAusentes_Retorna400(t *testing.T) {
	app, id := buildValidateApp(80)

	for _, query := range []string{
		"product_id=" + id + "&min=5",
		"product_id=" + id + "&max=100",
		"min=5&max=100",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/inventory/validate?"+query, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
		assert.Equal(t, "MISSING_FIELD", decodeBody(t, resp)["code"], query)
		resp.Body.Close()
	}
}
