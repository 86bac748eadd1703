package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El SKU es único entre todos los
// productos; el stock por tienda se maneja en StockRecord, nunca aquí.
type Product struct {
	ID          string
	SKU         string // código único asignado por humanos
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
