package dto

import (
	"time"

	"github.com/jhoicas/pos-stock/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de orden.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Notes     string          `json:"notes"`
}

// FulfillOrderRequest body para POST /api/orders/fulfill.
// kind = PURCHASE requiere supplier_id; en SALES customer_id es opcional (venta de mostrador).
type FulfillOrderRequest struct {
	Number          string             `json:"number"`
	Kind            string             `json:"kind"`
	Items           []OrderItemRequest `json:"items"`
	Tax             decimal.Decimal    `json:"tax"`
	Discount        decimal.Decimal    `json:"discount"`
	Notes           string             `json:"notes"`
	CustomerID      string             `json:"customer_id,omitempty"`
	SalesType       string             `json:"sales_type,omitempty"`
	DeliveryAddress string             `json:"delivery_address,omitempty"`
	SupplierID      string             `json:"supplier_id,omitempty"`
	ShippingTerms   string             `json:"shipping_terms,omitempty"`
	PaymentTerms    string             `json:"payment_terms,omitempty"`
	ProcessedBy     string             `json:"processed_by,omitempty"`
}

// FulfillOrderResponse resultado de aplicar una orden al stock.
type FulfillOrderResponse struct {
	Number    string             `json:"number"`
	Kind      string             `json:"kind"`
	Status    string             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	Movements []MovementResponse `json:"movements"`
}

// ProcessPaymentRequest body para POST /api/payments/process.
type ProcessPaymentRequest struct {
	ReferenceNumber string          `json:"reference_number"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	OrderTotal      decimal.Decimal `json:"order_total"`
	CashReceived    decimal.Decimal `json:"cash_received"`
	CardNumber      string          `json:"card_number,omitempty"`
	CardHolderName  string          `json:"card_holder_name,omitempty"`
	CardType        string          `json:"card_type,omitempty"`
	CardExpiry      *time.Time      `json:"card_expiry,omitempty"`
	Notes           string          `json:"notes"`
}

// PaymentResponse resultado del procesamiento.
type PaymentResponse struct {
	ReferenceNumber string          `json:"reference_number"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Change          decimal.Decimal `json:"change"`
	Date            time.Time       `json:"date"`
}

// ToOrder construye la orden de dominio a partir del request.
func (r FulfillOrderRequest) ToOrder(createdBy string) *order.Order {
	o := &order.Order{
		Number:    r.Number,
		Kind:      order.Kind(r.Kind),
		Date:      time.Now(),
		Tax:       r.Tax,
		Discount:  r.Discount,
		Notes:     r.Notes,
		Status:    order.StatusPending,
		CreatedBy: createdBy,
	}
	for _, it := range r.Items {
		o.Items = append(o.Items, order.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Notes:     it.Notes,
		})
	}
	switch o.Kind {
	case order.KindSales:
		o.Sales = &order.SalesDetails{CustomerID: r.CustomerID, SalesType: r.SalesType, DeliveryAddress: r.DeliveryAddress}
	case order.KindPurchase:
		o.Purchase = &order.PurchaseDetails{SupplierID: r.SupplierID, ShippingTerms: r.ShippingTerms, PaymentTerms: r.PaymentTerms}
	}
	return o
}

// ToPayment construye el pago de dominio a partir del request.
func (r ProcessPaymentRequest) ToPayment(processedBy string) *order.Payment {
	p := &order.Payment{
		ReferenceNumber: r.ReferenceNumber,
		Kind:            order.PaymentKind(r.Kind),
		Amount:          r.Amount,
		Status:          order.PaymentPending,
		Notes:           r.Notes,
		ProcessedBy:     processedBy,
	}
	switch p.Kind {
	case order.PaymentCash:
		p.Cash = &order.CashDetails{Received: r.CashReceived}
	case order.PaymentCard:
		p.Card = &order.CardDetails{
			Number:     r.CardNumber,
			HolderName: r.CardHolderName,
			CardType:   r.CardType,
			ExpiryDate: r.CardExpiry,
		}
	}
	return p
}
