package repository

import (
	"context"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
// Get* devuelven (nil, nil) si no existe el registro.
type InventoryRepository interface {
	// Create persiste el registro; devuelve error de duplicado si el producto ya tiene inventario.
	Create(ctx context.Context, inv *entity.Inventory) error
	// Update guarda el registro solo si Version coincide con la almacenada (ErrConflict si no)
	// e incrementa Version.
	Update(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error)
	// GetForUpdate y GetByProductForUpdate bloquean la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	GetByProductForUpdate(ctx context.Context, productID string) (*entity.Inventory, error)
	List(ctx context.Context) ([]*entity.Inventory, error)
	// ListLowStock registros activos con quantity <= minimum_stock.
	ListLowStock(ctx context.Context) ([]*entity.Inventory, error)
}
