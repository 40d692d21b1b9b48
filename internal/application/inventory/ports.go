package inventory

import (
	"context"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la inserción del movimiento y la actualización del inventario sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// EventPublisher notifica hechos ya confirmados (después del Commit).
// Un error de publicación no revierte la operación; solo se registra en el log.
type EventPublisher interface {
	PublishMovement(ctx context.Context, movement *entity.StockMovement) error
	PublishLowStock(ctx context.Context, inv *entity.Inventory) error
}

// NoopPublisher descarta los eventos (Redis deshabilitado).
type NoopPublisher struct{}

func (NoopPublisher) PublishMovement(context.Context, *entity.StockMovement) error { return nil }
func (NoopPublisher) PublishLowStock(context.Context, *entity.Inventory) error     { return nil }
