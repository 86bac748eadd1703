package entity

import "time"

// StockRecord representa la cantidad actual de un producto en una tienda.
// Clave compuesta (ProductID, StoreID); Quantity nunca es negativa.
// MinStock es el umbral bajo el cual el stock se considera "bajo".
type StockRecord struct {
	ID        string
	ProductID string
	StoreID   string
	Quantity  int64
	MinStock  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLow indica si la cantidad está en o por debajo del umbral configurado.
func (s *StockRecord) IsLow() bool {
	return s.Quantity <= s.MinStock
}

// Deficit devuelve cuántas unidades faltan para alcanzar MinStock (0 si no falta).
func (s *StockRecord) Deficit() int64 {
	if d := s.MinStock - s.Quantity; d > 0 {
		return d
	}
	return 0
}
