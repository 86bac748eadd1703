package repository

import (
	"context"
	"time"

	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
)

// LedgerTotal es la suma con signo de los movimientos de una clave (producto, tienda).
type LedgerTotal struct {
	ProductID string
	StoreID   string
	Total     int64
}

// MovementRepository define el puerto de persistencia para el libro de movimientos.
// El libro es append-only: el puerto no expone actualización ni borrado.
// Los listados se ordenan por timestamp descendente (lo más reciente primero).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	ListByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error)
	// SignedTotals agrega el libro por (producto, tienda): IN suma en destino, OUT resta
	// en origen y TRANSFER hace ambas. Base del chequeo de reconciliación contra el stock.
	SignedTotals(ctx context.Context) ([]LedgerTotal, error)
}
