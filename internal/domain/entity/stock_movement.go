package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/shopspring/decimal"
)

// StockMovement registro inmutable de auditoría de un evento que afecta el stock.
// Una vez registrado, Quantity es el delta con signo aplicado y PreviousStock/NewStock
// son la foto de Inventory.Quantity antes y después; nunca se recalculan.
type StockMovement struct {
	ID              string
	ProductID       string
	Type            MovementType
	Quantity        int
	ReferenceNumber string // factura, orden, nota de ajuste, etc.
	Reason          string
	UnitCost        decimal.Decimal
	ProcessedBy     string // EmployeeID
	Notes           string
	PreviousStock   int
	NewStock        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate verifica los campos obligatorios antes de registrar el movimiento.
func (m *StockMovement) Validate() error {
	if m.ProductID == "" {
		return domain.Invalid("el producto es obligatorio")
	}
	if m.Type == "" {
		return domain.Invalid("el tipo de movimiento es obligatorio")
	}
	if !m.Type.Valid() {
		return domain.Invalid("tipo de movimiento desconocido: %s", m.Type)
	}
	if m.Quantity == 0 {
		return domain.Invalid("la cantidad no puede ser cero")
	}
	if m.ProcessedBy == "" {
		return domain.Invalid("el empleado que procesa es obligatorio")
	}
	if strings.TrimSpace(m.ReferenceNumber) == "" {
		return domain.Invalid("el número de referencia es obligatorio")
	}
	if m.UnitCost.IsNegative() {
		return domain.Invalid("el costo unitario no puede ser negativo")
	}
	return nil
}

// TotalCost costo unitario por cantidad absoluta.
func (m *StockMovement) TotalCost() decimal.Decimal {
	q := m.Quantity
	if q < 0 {
		q = -q
	}
	return m.UnitCost.Mul(decimal.NewFromInt(int64(q)))
}
