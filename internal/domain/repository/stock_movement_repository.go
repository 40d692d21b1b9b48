package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de movimientos (DIP).
// Solo inserción: los movimientos son inmutables. Todas las listas van del más reciente al más antiguo.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct filtra por rango de fechas; from/to nil = sin límite.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, referenceNumber string) ([]*entity.StockMovement, error)
	List(ctx context.Context) ([]*entity.StockMovement, error)
}
