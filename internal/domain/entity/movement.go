package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType es el conjunto cerrado de tipos de movimiento de inventario.
type MovementType string

const (
	MovementTypeIN       MovementType = "IN"       // entrada (reposición o stock inicial)
	MovementTypeOUT      MovementType = "OUT"      // salida (venta o retiro)
	MovementTypeTRANSFER MovementType = "TRANSFER" // traslado entre tiendas
)

// Valid indica si el tipo pertenece al conjunto cerrado {IN, OUT, TRANSFER}.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Movement es un hecho histórico: una vez escrito nunca se actualiza ni elimina.
// Quantity siempre es positiva; el tipo determina la dirección.
// SourceStoreID es nil para IN; TargetStoreID es nil para OUT.
type Movement struct {
	ID            string
	ProductID     string
	Type          MovementType
	Quantity      int64
	SourceStoreID *string
	TargetStoreID *string
	Reference     string
	Notes         string
	UnitPrice     *decimal.Decimal
	Timestamp     time.Time
	CreatedAt     time.Time
}
