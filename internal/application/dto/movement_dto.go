package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements (IN u OUT sobre la tienda implícita;
// los traslados van por /api/inventory/transfer).
type RecordMovementRequest struct {
	ProductID string           `json:"productId"`
	Type      string           `json:"type"`
	Quantity  *int64           `json:"quantity"`
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// MovementResponse salida de un movimiento. El id y el productId siempre son strings.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"productId"`
	Type          string           `json:"type"`
	Quantity      int64            `json:"quantity"`
	SourceStoreID *string          `json:"sourceStoreId"`
	TargetStoreID *string          `json:"targetStoreId"`
	Reference     string           `json:"reference,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}
