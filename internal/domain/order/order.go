package order

import (
	"strings"
	"time"

	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Kind variante de orden.
type Kind string

const (
	KindSales    Kind = "SALES"
	KindPurchase Kind = "PURCHASE"
)

// Status estado de una orden.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Item línea de una orden. ReceivedQuantity solo aplica a compras.
type Item struct {
	ProductID        string
	Quantity         int
	UnitPrice        decimal.Decimal
	Discount         decimal.Decimal
	Notes            string
	ReceivedQuantity int
}

// Subtotal precio unitario por cantidad menos el descuento de la línea.
func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.Discount)
}

// Validate verifica producto, cantidad y precio de la línea.
func (it Item) Validate() error {
	if it.ProductID == "" {
		return domain.Invalid("el producto de la línea es obligatorio")
	}
	if it.Quantity <= 0 {
		return domain.Invalid("la cantidad de la línea debe ser mayor que cero")
	}
	if !it.UnitPrice.IsPositive() {
		return domain.Invalid("el precio unitario debe ser mayor que cero")
	}
	if it.Discount.IsNegative() {
		return domain.Invalid("el descuento no puede ser negativo")
	}
	if gross := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))); it.Discount.GreaterThan(gross) {
		return domain.Invalid("el descuento %s supera el valor de la línea %s", it.Discount, gross)
	}
	return nil
}

// SalesDetails datos propios de una orden de venta.
type SalesDetails struct {
	CustomerID      string
	SalesType       string // RETAIL, WHOLESALE, ...
	DeliveryAddress string
	DeliveryDate    *time.Time
}

// PurchaseDetails datos propios de una orden de compra.
type PurchaseDetails struct {
	SupplierID           string
	ExpectedDeliveryDate *time.Time
	ShippingTerms        string
	PaymentTerms         string
}

// Order orden de venta o compra. Exactamente uno de Sales/Purchase debe estar presente según Kind.
type Order struct {
	Number    string
	Kind      Kind
	Date      time.Time
	Items     []Item
	Tax       decimal.Decimal
	Discount  decimal.Decimal
	Notes     string
	Status    Status
	CreatedBy string // EmployeeID
	Sales     *SalesDetails
	Purchase  *PurchaseDetails
}

// Validate verifica cabecera, líneas y detalle de la variante.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.Number) == "" {
		return domain.Invalid("el número de orden es obligatorio")
	}
	if len(o.Items) == 0 {
		return domain.Invalid("la orden debe tener al menos una línea")
	}
	for _, it := range o.Items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	if o.Tax.IsNegative() || o.Discount.IsNegative() {
		return domain.Invalid("impuesto y descuento no pueden ser negativos")
	}
	switch o.Kind {
	case KindSales:
		if o.Sales == nil {
			return domain.Invalid("la orden de venta requiere datos de venta")
		}
	case KindPurchase:
		if o.Purchase == nil || o.Purchase.SupplierID == "" {
			return domain.Invalid("la orden de compra requiere proveedor")
		}
	default:
		return domain.Invalid("tipo de orden desconocido: %q", o.Kind)
	}
	return nil
}

// CalculateTotal suma de subtotales más impuesto menos descuento, según la variante.
func CalculateTotal(o *Order) (decimal.Decimal, error) {
	switch o.Kind {
	case KindSales, KindPurchase:
	default:
		return decimal.Zero, domain.Invalid("tipo de orden desconocido: %q", o.Kind)
	}
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total.Add(o.Tax).Sub(o.Discount), nil
}

// MovementTypeFor tipo de movimiento de stock que genera cada línea de la orden.
func MovementTypeFor(k Kind) (entity.MovementType, error) {
	switch k {
	case KindSales:
		return entity.MovementSalesDeduct, nil
	case KindPurchase:
		return entity.MovementPurchaseReceive, nil
	}
	return "", domain.Invalid("tipo de orden desconocido: %q", k)
}
