package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockItemSelect = `
	SELECT s.id, s.product_id, s.store_id, s.quantity, s.min_stock,
	       p.name, p.sku, p.price
	FROM stock_records s
	JOIN products p ON p.id = s.product_id`

// Get obtiene el registro de stock de un producto en una tienda.
// Devuelve (nil, nil) si no existe: ausencia significa stock cero.
func (r *StockRepo) Get(ctx context.Context, productID, storeID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, store_id, quantity, min_stock, created_at, updated_at
		FROM stock_records WHERE product_id = $1 AND store_id = $2`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&s.ID, &s.ProductID, &s.StoreID, &s.Quantity, &s.MinStock, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el registro bloqueando la fila (SELECT FOR UPDATE) por el
// resto de la transacción. Una escritura concurrente sobre la misma clave espera
// hasta el commit, así la cantidad leída sigue vigente cuando se sobreescribe.
// Devuelve (nil, nil) si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, store_id, quantity, min_stock, created_at, updated_at
		FROM stock_records WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&s.ID, &s.ProductID, &s.StoreID, &s.Quantity, &s.MinStock, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Create inserta un registro nuevo. El índice único (product_id, store_id) respalda
// que exista a lo sumo un registro por clave.
func (r *StockRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_records (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.ProductID, record.StoreID, record.Quantity,
		record.MinStock, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock record: %w", err)
	}
	return nil
}

// SetQuantity sobreescribe la cantidad (upsert por producto y tienda).
func (r *StockRepo) SetQuantity(ctx context.Context, productID, storeID string, quantity int64) error {
	query := `
		INSERT INTO stock_records (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, now(), now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), productID, storeID, quantity)
	if err != nil {
		return fmt.Errorf("set stock quantity: %w", err)
	}
	return nil
}

// Increment aplica delta como una sola operación condicional en el almacén.
// Nunca lee-y-reescribe desde la aplicación: la condición quantity + delta >= 0
// se evalúa en el mismo statement que la mutación, de modo que incrementos
// concurrentes sobre la misma clave no pueden dejar stock negativo ni perderse.
func (r *StockRepo) Increment(ctx context.Context, productID, storeID string, delta, defaultMinStock int64) error {
	if delta >= 0 {
		query := `
			INSERT INTO stock_records (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (product_id, store_id)
			DO UPDATE SET quantity = stock_records.quantity + EXCLUDED.quantity, updated_at = now()`
		_, err := r.q.Exec(ctx, query, uuid.New().String(), productID, storeID, delta, defaultMinStock)
		if err != nil {
			return fmt.Errorf("increment stock: %w", err)
		}
		return nil
	}
	query := `
		UPDATE stock_records
		SET quantity = quantity + $3, updated_at = now()
		WHERE product_id = $1 AND store_id = $2 AND quantity + $3 >= 0`
	cmd, err := r.q.Exec(ctx, query, productID, storeID, delta)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	// Cero filas afectadas: el registro no existe o la cantidad no alcanza.
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ListByStore lista el stock de una tienda unido con los datos del producto.
func (r *StockRepo) ListByStore(ctx context.Context, storeID string) ([]repository.StockItem, error) {
	query := stockItemSelect + ` WHERE s.store_id = $1 ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stock by store: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// ListAll lista todo el stock unido con los datos del producto.
func (r *StockRepo) ListAll(ctx context.Context) ([]repository.StockItem, error) {
	query := stockItemSelect + ` ORDER BY s.store_id, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// ListByProduct lista los registros de stock de un producto en todas las tiendas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, store_id, quantity, min_stock, created_at, updated_at
		FROM stock_records WHERE product_id = $1 ORDER BY store_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.StoreID, &s.Quantity, &s.MinStock, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListLow devuelve registros bajo el umbral propio (min_stock) o bajo uno explícito.
func (r *StockRepo) ListLow(ctx context.Context, threshold *int64) ([]repository.StockItem, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if threshold == nil {
		rows, err = r.q.Query(ctx, stockItemSelect+` WHERE s.quantity <= s.min_stock ORDER BY s.quantity - s.min_stock`)
	} else {
		rows, err = r.q.Query(ctx, stockItemSelect+` WHERE s.quantity <= $1 ORDER BY s.quantity`, *threshold)
	}
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// CountByProduct cuenta los registros de stock que referencian un producto.
func (r *StockRepo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_records WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock by product: %w", err)
	}
	return n, nil
}

// UpsertBatch aplica todas las sobreescrituras en un solo batch (un round-trip).
func (r *StockRepo) UpsertBatch(ctx context.Context, records []*entity.StockRecord) error {
	if len(records) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_records (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	batch := &pgx.Batch{}
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.New().String()
		}
		batch.Queue(query, id, rec.ProductID, rec.StoreID, rec.Quantity, rec.MinStock)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch upsert stock: %w", err)
		}
	}
	return nil
}

func collectStockItems(rows pgx.Rows) ([]repository.StockItem, error) {
	var list []repository.StockItem
	for rows.Next() {
		var it repository.StockItem
		if err := rows.Scan(&it.RecordID, &it.ProductID, &it.StoreID, &it.Quantity, &it.MinStock,
			&it.ProductName, &it.ProductSKU, &it.Price); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
