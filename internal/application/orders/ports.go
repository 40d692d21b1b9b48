package orders

import (
	"context"
	"time"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// MovementRecorder interfaz para integrar órdenes con el libro de stock.
// ApplyInTx aplica un movimiento usando los repositorios del caller (misma transacción);
// si retorna error (ej: stock insuficiente), el caller debe hacer rollback.
type MovementRecorder interface {
	CheckReferences(ctx context.Context, movement *entity.StockMovement) error
	ApplyInTx(
		ctx context.Context,
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		movement *entity.StockMovement,
		now time.Time,
	) error
	Committed(ctx context.Context, movement *entity.StockMovement)
}
