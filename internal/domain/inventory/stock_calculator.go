package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// Prefijos de referencias generadas por el sistema.
const (
	AdjustmentPrefix = "ADJ"
	InitialPrefix    = "INIT"
)

// ComputeNewStock aplica la direccionalidad del tipo de movimiento (servicio de dominio).
// Devuelve el delta con signo y el stock resultante.
// RECEIPT, tipos de entrada, TRANSFER y ADJUSTMENT suman la cantidad tal como llega;
// los tipos de salida restan |cantidad|.
func ComputeNewStock(previous int, t entity.MovementType, quantity int) (delta, newStock int) {
	delta = t.Delta(quantity)
	return delta, previous + delta
}

// ValidateStockLevel rechaza stock negativo o por encima del máximo (si el máximo es positivo).
func ValidateStockLevel(inv *entity.Inventory, newStock int) error {
	if newStock < 0 {
		return domain.Insufficient("el movimiento dejaría el stock en negativo (actual %d, resultado %d)", inv.Quantity, newStock)
	}
	if inv.MaximumStock > 0 && newStock > inv.MaximumStock {
		return domain.Invalid("el movimiento excedería el stock máximo de %d (resultado %d)", inv.MaximumStock, newStock)
	}
	return nil
}

// AdjustmentReference referencia para ajustes sin referencia externa: ADJ-<unix millis>.
func AdjustmentReference(now time.Time) string {
	return fmt.Sprintf("%s-%d", AdjustmentPrefix, now.UnixMilli())
}

// InitialReference referencia del movimiento inicial al crear el inventario: INIT-<unix millis>.
func InitialReference(now time.Time) string {
	return fmt.Sprintf("%s-%d", InitialPrefix, now.UnixMilli())
}
