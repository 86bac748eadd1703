package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// Mapeo error de dominio -> (status, code). Los mensajes de validación se devuelven
// tal cual; los fallos de almacenamiento se loguean con contexto y salen como un
// INTERNAL genérico — el texto crudo del error nunca llega al cliente.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidIdentifier, fiber.StatusBadRequest, "INVALID_ID"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidTransfer, fiber.StatusBadRequest, "INVALID_TRANSFER"},
	{domain.ErrInvalidMovementType, fiber.StatusBadRequest, "INVALID_MOVEMENT_TYPE"},
	{domain.ErrMissingField, fiber.StatusBadRequest, "MISSING_FIELD"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicateSKU, fiber.StatusConflict, "DUPLICATE_SKU"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrHasInventory, fiber.StatusConflict, "HAS_INVENTORY"},
}

func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("fallo de almacenamiento")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
