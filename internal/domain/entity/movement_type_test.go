package entity

import (
	"testing"

	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementType_Delta(t *testing.T) {
	tests := []struct {
		name     string
		typ      MovementType
		quantity int
		want     int
	}{
		{"receipt suma", MovementReceipt, 50, 50},
		{"receipt negativo se aplica tal cual", MovementReceipt, -5, -5},
		{"compra recibida negativa se aplica tal cual", MovementPurchaseReceive, -2, -2},
		{"venta resta", MovementSalesDeduct, 3, -3},
		{"venta con negativo resta igual", MovementSalesDeduct, -3, -3},
		{"dañado resta", MovementDamaged, 2, -2},
		{"devolución de cliente suma", MovementReturnFromCustomer, 4, 4},
		{"traslado usa el valor", MovementTransfer, -30, -30},
		{"traslado positivo", MovementTransfer, 30, 30},
		{"ajuste negativo", MovementAdjustment, -7, -7},
		{"ajuste positivo", MovementAdjustment, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Delta(tt.quantity))
		})
	}
}

func TestMovementTypes_AllValidWithDescription(t *testing.T) {
	all := MovementTypes()
	assert.Len(t, all, 13)
	for _, mt := range all {
		assert.True(t, mt.Valid(), mt)
		assert.NotEmpty(t, mt.Description(), mt)
		assert.NotZero(t, mt.Direction(), mt)
	}
	assert.False(t, MovementType("TELEPORT").Valid())
}

func TestParseMovementType(t *testing.T) {
	got, err := ParseMovementType(" sales_deduct ")
	require.NoError(t, err)
	assert.Equal(t, MovementSalesDeduct, got)

	_, err = ParseMovementType("TELEPORT")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementType_IsRestock(t *testing.T) {
	assert.True(t, MovementReceipt.IsRestock())
	assert.True(t, MovementPurchaseReceive.IsRestock())
	assert.False(t, MovementReturnFromCustomer.IsRestock())
	assert.False(t, MovementAdjustment.IsRestock())
}
