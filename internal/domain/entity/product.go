package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product vista del catálogo que necesita el motor de stock (solo lectura).
// El stock no vive aquí: se maneja en Inventory.
type Product struct {
	ID        string
	Code      string // código único
	Name      string
	Price     decimal.Decimal // precio de venta
	CostPrice decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
