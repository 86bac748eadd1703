package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los mapean
// a códigos de estado; los mensajes de validación se devuelven tal cual al cliente.
var (
	ErrInvalidIdentifier   = errors.New("identificador inválido")
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrDuplicateSKU        = errors.New("el SKU ya existe")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransfer     = errors.New("la tienda origen y destino deben ser distintas")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrMissingField        = errors.New("campo requerido faltante")
	ErrHasInventory        = errors.New("no se puede eliminar un producto con inventario existente")
)
