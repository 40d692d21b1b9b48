package order

import (
	"testing"
	"time"

	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func salesOrder() *Order {
	return &Order{
		Number: "SO-1",
		Kind:   KindSales,
		Items: []Item{
			{ProductID: "p1", Quantity: 2, UnitPrice: d("10.00"), Discount: d("1.00")},
			{ProductID: "p2", Quantity: 1, UnitPrice: d("5.50")},
		},
		Tax:      d("2.00"),
		Discount: d("0.50"),
		Sales:    &SalesDetails{SalesType: "RETAIL"},
	}
}

func TestCalculateTotal(t *testing.T) {
	total, err := CalculateTotal(salesOrder())
	require.NoError(t, err)
	// (20 - 1) + 5.50 + 2 - 0.50
	assert.True(t, total.Equal(d("26.00")), total.String())

	purchase := salesOrder()
	purchase.Kind = KindPurchase
	total, err = CalculateTotal(purchase)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("26.00")))

	_, err = CalculateTotal(&Order{Kind: "RENTAL"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_Validate(t *testing.T) {
	assert.NoError(t, salesOrder().Validate())

	noItems := salesOrder()
	noItems.Items = nil
	assert.ErrorIs(t, noItems.Validate(), domain.ErrInvalidInput)

	badQty := salesOrder()
	badQty.Items[0].Quantity = 0
	assert.ErrorIs(t, badQty.Validate(), domain.ErrInvalidInput)

	bigDiscount := salesOrder()
	bigDiscount.Items[1].Discount = d("5.51")
	assert.ErrorIs(t, bigDiscount.Validate(), domain.ErrInvalidInput, "descuento mayor que la línea")
	fullDiscount := salesOrder()
	fullDiscount.Items[1].Discount = d("5.50")
	assert.NoError(t, fullDiscount.Validate())

	negTax := salesOrder()
	negTax.Tax = d("-1")
	assert.ErrorIs(t, negTax.Validate(), domain.ErrInvalidInput)

	purchase := salesOrder()
	purchase.Kind = KindPurchase
	purchase.Sales = nil
	assert.ErrorIs(t, purchase.Validate(), domain.ErrInvalidInput, "compra sin proveedor")
	purchase.Purchase = &PurchaseDetails{SupplierID: "sup-1"}
	assert.NoError(t, purchase.Validate())
}

func TestMovementTypeFor(t *testing.T) {
	mt, err := MovementTypeFor(KindSales)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementSalesDeduct, mt)

	mt, err = MovementTypeFor(KindPurchase)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementPurchaseReceive, mt)
}

func TestPayment_Cash(t *testing.T) {
	now := time.Now()
	p := &Payment{Kind: PaymentCash, Amount: d("26.00"), Cash: &CashDetails{Received: d("30.00")}}
	require.NoError(t, p.Process(now))
	assert.Equal(t, PaymentCompleted, p.Status)
	assert.True(t, p.Cash.Change.Equal(d("4.00")))
	assert.Equal(t, now, p.Date)

	assert.Error(t, p.Process(now), "no se procesa dos veces")

	require.NoError(t, p.Void())
	assert.Equal(t, PaymentVoided, p.Status)
	assert.Error(t, p.Void())

	short := &Payment{Kind: PaymentCash, Amount: d("26.00"), Cash: &CashDetails{Received: d("20.00")}}
	require.NoError(t, short.Process(now))
	assert.Equal(t, PaymentFailed, short.Status)
}

func TestPayment_Card(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(0, -1, 0)

	ok := &Payment{Kind: PaymentCard, Amount: d("10"), Card: &CardDetails{Number: "4111111111111111", ExpiryDate: &future}}
	require.NoError(t, ok.Process(now))
	assert.Equal(t, PaymentCompleted, ok.Status)

	expired := &Payment{Kind: PaymentCard, Amount: d("10"), Card: &CardDetails{Number: "4111111111111111", ExpiryDate: &past}}
	require.NoError(t, expired.Process(now))
	assert.Equal(t, PaymentFailed, expired.Status)

	assert.ErrorIs(t, (&Payment{Kind: PaymentCard, Amount: d("10")}).Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, (&Payment{Kind: PaymentCash, Amount: d("0"), Cash: &CashDetails{}}).Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, (&Payment{Kind: "CHEQUE", Amount: d("1")}).Validate(), domain.ErrInvalidInput)
}
