package entity

import (
	"time"

	"github.com/jhoicas/pos-stock/internal/domain"
)

// Inventory representa el stock vivo de un producto (relación 1:1 con Product).
// MaximumStock = 0 significa sin límite superior.
// Version se incrementa en cada actualización y protege contra actualizaciones perdidas.
type Inventory struct {
	ID                 string
	ProductID          string
	Quantity           int
	MinimumStock       int
	MaximumStock       int
	Location           string
	BinNumber          string
	LastRestockDate    *time.Time
	LastStockCheckDate *time.Time
	Version            int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate verifica los invariantes del registro.
func (i *Inventory) Validate() error {
	if i.ProductID == "" {
		return domain.Invalid("el producto es obligatorio")
	}
	if i.Quantity < 0 {
		return domain.Invalid("la cantidad no puede ser negativa")
	}
	if i.MinimumStock < 0 {
		return domain.Invalid("el stock mínimo no puede ser negativo")
	}
	if i.MaximumStock < 0 {
		return domain.Invalid("el stock máximo no puede ser negativo")
	}
	if i.MaximumStock > 0 && i.MaximumStock < i.MinimumStock {
		return domain.Invalid("el stock máximo no puede ser menor que el stock mínimo")
	}
	return nil
}

// IsLowStock verdadero cuando la cantidad es menor o igual al stock mínimo.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.MinimumStock
}

// CanAddStock indica si sumar amount respeta el stock máximo (0 = sin límite).
func (i *Inventory) CanAddStock(amount int) bool {
	return i.MaximumStock == 0 || i.Quantity+amount <= i.MaximumStock
}
