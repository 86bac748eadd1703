package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del libro de movimientos sobre PostgreSQL.
// No expone UPDATE ni DELETE: un movimiento escrito es un hecho histórico.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, source_store_id, target_store_id,
	reference, notes, unit_price, timestamp, created_at`

// Create persiste un movimiento. Asigna id y timestamp si faltan.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.Timestamp.IsZero() {
		movement.Timestamp = time.Now()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = movement.Timestamp
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, string(movement.Type), movement.Quantity,
		movement.SourceStoreID, movement.TargetStoreID,
		movement.Reference, movement.Notes, movement.UnitPrice,
		movement.Timestamp, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista los movimientos de un producto, el más reciente primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 ORDER BY timestamp DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByType lista los movimientos de un tipo, el más reciente primero.
func (r *MovementRepo) ListByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE type = $1 ORDER BY timestamp DESC`
	rows, err := r.q.Query(ctx, query, string(movementType))
	if err != nil {
		return nil, fmt.Errorf("list movements by type: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByDateRange lista los movimientos con timestamp en [from, to], el más reciente primero.
func (r *MovementRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE timestamp >= $1 AND timestamp <= $2 ORDER BY timestamp DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list movements by date range: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SignedTotals agrega el libro por (producto, tienda). IN suma en la tienda destino,
// OUT resta en la de origen y TRANSFER resta en origen y suma en destino.
func (r *MovementRepo) SignedTotals(ctx context.Context) ([]repository.LedgerTotal, error) {
	query := `
		SELECT product_id, store_id, SUM(delta) AS total FROM (
			SELECT product_id, target_store_id AS store_id, quantity  AS delta FROM movements WHERE type = 'IN'
			UNION ALL
			SELECT product_id, source_store_id, -quantity FROM movements WHERE type = 'OUT'
			UNION ALL
			SELECT product_id, source_store_id, -quantity FROM movements WHERE type = 'TRANSFER'
			UNION ALL
			SELECT product_id, target_store_id, quantity FROM movements WHERE type = 'TRANSFER'
		) deltas
		WHERE store_id IS NOT NULL
		GROUP BY product_id, store_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger signed totals: %w", err)
	}
	defer rows.Close()
	var list []repository.LedgerTotal
	for rows.Next() {
		var t repository.LedgerTotal
		if err := rows.Scan(&t.ProductID, &t.StoreID, &t.Total); err != nil {
			return nil, fmt.Errorf("scan ledger total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var typ string
	err := row.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.SourceStoreID, &m.TargetStoreID,
		&m.Reference, &m.Notes, &m.UnitPrice, &m.Timestamp, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.SourceStoreID, &m.TargetStoreID,
			&m.Reference, &m.Notes, &m.UnitPrice, &m.Timestamp, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}
