package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/application/inventory"
	"github.com/githubcj79/inventory-managment-system/internal/application/usecase"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	inv *inventory.InventoryUseCase
	uc  *usecase.MovementUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(inv *inventory.InventoryUseCase, uc *usecase.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{inv: inv, uc: uc, log: log}
}

// Record godoc
// @Summary      Registrar movimiento IN u OUT (tienda implícita)
// @Description  Los traslados entre tiendas van por /api/inventory/transfer.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "productId, type (IN|OUT), quantity; reference, notes, unitPrice opcionales"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Type == "" || in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: "productId, type y quantity son requeridos"})
	}
	id, err := h.inv.RecordMovement(c.Context(), inventory.RecordMovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  *in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		UnitPrice: in.UnitPrice,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Message: "movimiento registrado", ID: id})
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Movimientos de un producto (más recientes primero)
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/product/{id} [get]
func (h *MovementHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ByType godoc
// @Summary      Movimientos por tipo (IN, OUT o TRANSFER)
// @Tags         movements
// @Produce      json
// @Param        type  path  string  true  "Tipo de movimiento"
// @Success      200   {array}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/type/{type} [get]
func (h *MovementHandler) ByType(c *fiber.Ctx) error {
	out, err := h.uc.ByType(c.Context(), c.Params("type"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ByDateRange godoc
// @Summary      Movimientos en un rango de fechas
// @Tags         movements
// @Produce      json
// @Param        start  query  string  true  "Inicio (RFC 3339)"
// @Param        end    query  string  true  "Fin (RFC 3339)"
// @Success      200    {array}  dto.MovementResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movements/range [get]
func (h *MovementHandler) ByDateRange(c *fiber.Ctx) error {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "start debe ser RFC 3339"})
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "end debe ser RFC 3339"})
	}
	out, err := h.uc.ByDateRange(c.Context(), start, end)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
