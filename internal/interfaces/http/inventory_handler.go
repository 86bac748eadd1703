package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/application/inventory"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de stock: inicialización, traslados,
// ajustes, alertas y reconciliación.
type InventoryHandler struct {
	uc  *inventory.InventoryUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Inicializar inventario de un producto en una tienda
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "productId, storeId, quantity, minStock"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.StoreID == "" || in.Quantity == nil || in.MinStock == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: "productId, storeId, quantity y minStock son requeridos"})
	}
	id, err := h.uc.CreateInventory(c.Context(), inventory.CreateInventoryInput{
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  *in.Quantity,
		MinStock:  *in.MinStock,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Message: "inventario creado", ID: id})
}

// List godoc
// @Summary      Listar todo el stock
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListInventory(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByStore godoc
// @Summary      Listar stock de una tienda
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/inventory/stores/{id} [get]
func (h *InventoryHandler) GetByStore(c *fiber.Ctx) error {
	out, err := h.uc.GetStoreInventory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Stock de un producto en todas las tiendas
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetProductStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Trasladar stock entre tiendas
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "productId, sourceStoreId, targetStoreId, quantity"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.TransferStock(c.Context(), inventory.TransferInput{
		ProductID:     in.ProductID,
		SourceStoreID: in.SourceStoreID,
		TargetStoreID: in.TargetStoreID,
		Quantity:      in.Quantity,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.StatusResponse{Message: "stock trasladado"})
}

// Adjust godoc
// @Summary      Ajuste manual de stock (sobreescritura, tienda implícita)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, quantity"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [put]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: "productId y quantity son requeridos"})
	}
	if err := h.uc.AdjustStock(c.Context(), in.ProductID, *in.Quantity); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.StatusResponse{Message: "stock ajustado"})
}

// BulkAdjust godoc
// @Summary      Ajuste masivo todo-o-nada
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "items: lista de {productId, quantity}"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk-adjust [put]
func (h *InventoryHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.BulkAdjustItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity == nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: "cada item requiere productId y quantity"})
		}
		items = append(items, inventory.BulkAdjustItem{ProductID: it.ProductID, Quantity: *it.Quantity})
	}
	if err := h.uc.BulkAdjust(c.Context(), items); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.StatusResponse{Message: "ajuste masivo aplicado"})
}

// Validate godoc
// @Summary      Clasificar nivel de stock contra umbrales
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Param        min         query  int     true  "Umbral mínimo"
// @Param        max         query  int     true  "Umbral máximo"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/validate [get]
func (h *InventoryHandler) Validate(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	// min y max son obligatorios: con un default de 0, omitir max clasificaría
	// cualquier stock positivo como excess.
	if productID == "" || c.Query("min") == "" || c.Query("max") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: "product_id, min y max son requeridos"})
	}
	level, err := h.uc.ValidateStockLevel(c.Context(), productID,
		int64(c.QueryInt("min")), int64(c.QueryInt("max")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.StockLevelResponse{
		ProductID:    level.ProductID,
		Quantity:     level.Quantity,
		Status:       level.Status,
		MinThreshold: level.MinThreshold,
		MaxThreshold: level.MaxThreshold,
	})
}

// Alerts godoc
// @Summary      Alertas de stock bajo
// @Description  Registros con cantidad en o bajo su propio min_stock, o bajo el
//	umbral explícito ?threshold=N si se entrega.
// @Tags         inventory
// @Produce      json
// @Param        threshold  query  int  false  "Umbral explícito"
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	var threshold *int64
	if c.Query("threshold") != "" {
		t := int64(c.QueryInt("threshold"))
		threshold = &t
	}
	out, err := h.uc.LowStockAlerts(c.Context(), threshold)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Description  Registros bajo su min_stock con cantidad de pedido sugerida,
//	priorizados por salidas recientes.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.uc.ReplenishmentSuggestions(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Chequeo libro-vs-stock
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
