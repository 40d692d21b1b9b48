package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, movement_type, quantity, reference_number, reason, unit_cost,
	processed_by, notes, previous_stock, new_stock, created_at, updated_at`

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.ReferenceNumber, m.Reason, m.UnitCost,
		m.ProcessedBy, m.Notes, m.PreviousStock, m.NewStock, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct movimientos del producto, opcionalmente acotados por fecha (inclusive).
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	var a argCounter
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = ` + a.add(productID)
	if from != nil {
		query += ` AND created_at >= ` + a.add(*from)
	}
	if to != nil {
		query += ` AND created_at <= ` + a.add(*to)
	}
	query += ` ORDER BY created_at DESC, id`
	return r.list(ctx, query, a.args...)
}

// ListByReference movimientos con el número de referencia (ej: número de orden).
func (r *StockMovementRepo) ListByReference(ctx context.Context, referenceNumber string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE reference_number = $1 ORDER BY created_at DESC, id`, referenceNumber)
}

// List todos los movimientos.
func (r *StockMovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements ORDER BY created_at DESC, id`)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var movType string
	err := row.Scan(
		&m.ID, &m.ProductID, &movType, &m.Quantity, &m.ReferenceNumber, &m.Reason, &m.UnitCost,
		&m.ProcessedBy, &m.Notes, &m.PreviousStock, &m.NewStock, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	return &m, nil
}
