package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
)

// StockItem es el resultado crudo de un listado de stock unido con el producto.
type StockItem struct {
	RecordID    string
	ProductID   string
	StoreID     string
	Quantity    int64
	MinStock    int64
	ProductName string
	ProductSKU  string
	Price       decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar stock por tienda+producto.
// La regla central: Increment es una actualización condicional atómica ejecutada como una
// sola operación en el almacén — nunca un read-modify-write desde la aplicación. Sin eso,
// operaciones OUT/TRANSFER concurrentes sobre la misma clave pueden dejar stock negativo
// o perder actualizaciones.
type StockRepository interface {
	// Get devuelve (nil, nil) si no hay registro: ausencia significa stock cero, no error.
	Get(ctx context.Context, productID, storeID string) (*entity.StockRecord, error)
	// GetForUpdate lee el registro bloqueando la fila por el resto de la transacción
	// (SELECT FOR UPDATE). Para leer-y-sobreescribir dentro de una tx: sin el bloqueo,
	// una escritura concurrente entre la lectura y la sobreescritura deja la lectura
	// obsoleta. Devuelve (nil, nil) si no hay registro.
	GetForUpdate(ctx context.Context, productID, storeID string) (*entity.StockRecord, error)
	// Create inserta un registro nuevo; devuelve domain.ErrDuplicate si ya existe uno
	// para (productID, storeID).
	Create(ctx context.Context, record *entity.StockRecord) error
	// SetQuantity sobreescribe la cantidad (upsert). Usado por el ajuste manual.
	SetQuantity(ctx context.Context, productID, storeID string, quantity int64) error
	// Increment suma delta (puede ser negativo) de forma atómica y condicional:
	// si el resultado quedaría negativo devuelve domain.ErrInsufficientStock sin efecto
	// observable. Con delta positivo y registro ausente lo crea con defaultMinStock.
	Increment(ctx context.Context, productID, storeID string, delta, defaultMinStock int64) error
	ListByStore(ctx context.Context, storeID string) ([]StockItem, error)
	ListAll(ctx context.Context) ([]StockItem, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error)
	// ListLow devuelve registros con quantity <= min_stock si threshold es nil,
	// o quantity <= *threshold si se entrega uno explícito.
	ListLow(ctx context.Context, threshold *int64) ([]StockItem, error)
	// CountByProduct es la guarda referencial para eliminar productos.
	CountByProduct(ctx context.Context, productID string) (int64, error)
	// UpsertBatch aplica todas las sobreescrituras en un solo batch.
	UpsertBatch(ctx context.Context, records []*entity.StockRecord) error
}
