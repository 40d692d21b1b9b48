package order

import (
	"time"

	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentKind variante de pago.
type PaymentKind string

const (
	PaymentCash PaymentKind = "CASH"
	PaymentCard PaymentKind = "CARD"
)

// PaymentStatus estado de un pago.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentVoided    PaymentStatus = "VOIDED"
)

// CashDetails efectivo recibido y cambio calculado.
type CashDetails struct {
	Received decimal.Decimal
	Change   decimal.Decimal
}

// CardDetails datos de tarjeta.
type CardDetails struct {
	Number            string
	HolderName        string
	CardType          string
	AuthorizationCode string
	ExpiryDate        *time.Time
}

// Payment pago de una orden; Cash o Card según Kind.
type Payment struct {
	ReferenceNumber string
	Kind            PaymentKind
	Amount          decimal.Decimal
	Status          PaymentStatus
	Date            time.Time
	Notes           string
	ProcessedBy     string
	Cash            *CashDetails
	Card            *CardDetails
}

// Validate monto positivo y detalle de la variante presente.
func (p *Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return domain.Invalid("el monto del pago debe ser mayor que cero")
	}
	switch p.Kind {
	case PaymentCash:
		if p.Cash == nil {
			return domain.Invalid("el pago en efectivo requiere el monto recibido")
		}
	case PaymentCard:
		if p.Card == nil {
			return domain.Invalid("el pago con tarjeta requiere datos de tarjeta")
		}
	default:
		return domain.Invalid("tipo de pago desconocido: %q", p.Kind)
	}
	return nil
}

// Process procesa el pago: COMPLETED si procede, FAILED si no.
// Efectivo: recibido >= monto, calcula el cambio. Tarjeta: número presente y no vencida en now.
func (p *Payment) Process(now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status != "" && p.Status != PaymentPending {
		return domain.Invalid("el pago ya fue procesado (%s)", p.Status)
	}
	p.Date = now
	switch p.Kind {
	case PaymentCash:
		if p.Cash.Received.GreaterThanOrEqual(p.Amount) {
			p.Cash.Change = p.Cash.Received.Sub(p.Amount)
			p.Status = PaymentCompleted
			return nil
		}
	case PaymentCard:
		if p.Card.Number != "" && p.Card.ExpiryDate != nil && p.Card.ExpiryDate.After(now) {
			p.Status = PaymentCompleted
			return nil
		}
	}
	p.Status = PaymentFailed
	return nil
}

// Void anula un pago completado.
func (p *Payment) Void() error {
	if p.Status != PaymentCompleted {
		return domain.Invalid("solo se puede anular un pago completado")
	}
	p.Status = PaymentVoided
	return nil
}
