package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, quantity, minimum_stock, maximum_stock, location, bin_number,
	last_restock_date, last_stock_check_date, version, is_active, created_at, updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta el registro. product_id es único: un segundo registro del mismo producto es duplicado.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ProductID, inv.Quantity, inv.MinimumStock, inv.MaximumStock, inv.Location, inv.BinNumber,
		nullableTime(inv.LastRestockDate), nullableTime(inv.LastStockCheckDate), inv.Version, inv.IsActive,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("ya existe inventario para el producto %s", inv.ProductID)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Update guarda el registro si la versión coincide e incrementa inv.Version.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET
			quantity = $3, minimum_stock = $4, maximum_stock = $5, location = $6, bin_number = $7,
			last_restock_date = $8, last_stock_check_date = $9, is_active = $10, updated_at = $11,
			version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Version, inv.Quantity, inv.MinimumStock, inv.MaximumStock, inv.Location, inv.BinNumber,
		nullableTime(inv.LastRestockDate), nullableTime(inv.LastStockCheckDate), inv.IsActive, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventario %s versión %d", domain.ErrConflict, inv.ID, inv.Version)
	}
	inv.Version++
	return nil
}

// GetByID obtiene el registro por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.getOne(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
}

// GetByProduct obtiene el registro del producto.
func (r *InventoryRepo) GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error) {
	return r.getOne(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1`, productID)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.getOne(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1 FOR UPDATE`, id)
}

// GetByProductForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *InventoryRepo) GetByProductForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	return r.getOne(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 FOR UPDATE`, productID)
}

// List todos los registros.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Inventory, error) {
	return r.list(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY created_at`)
}

// ListLowStock registros activos con quantity <= minimum_stock.
func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]*entity.Inventory, error) {
	return r.list(ctx, `
		SELECT `+inventoryColumns+` FROM inventory
		WHERE is_active AND quantity <= minimum_stock
		ORDER BY quantity`)
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var out []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.MinimumStock, &inv.MaximumStock, &inv.Location, &inv.BinNumber,
		&inv.LastRestockDate, &inv.LastStockCheckDate, &inv.Version, &inv.IsActive, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
