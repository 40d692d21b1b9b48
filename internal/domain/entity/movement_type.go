package entity

import (
	"strings"

	"github.com/jhoicas/pos-stock/internal/domain"
)

// MovementType clasificación cerrada de un movimiento de stock; determina el signo de la cantidad.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementReceipt            MovementType = "RECEIPT"
	MovementTransfer           MovementType = "TRANSFER"
	MovementAdjustment         MovementType = "ADJUSTMENT"
	MovementPurchaseReceive    MovementType = "PURCHASE_RECEIVE"
	MovementSalesDeduct        MovementType = "SALES_DEDUCT"
	MovementAdjustmentAdd      MovementType = "ADJUSTMENT_ADD"
	MovementAdjustmentDeduct   MovementType = "ADJUSTMENT_DEDUCT"
	MovementReturnFromCustomer MovementType = "RETURN_FROM_CUSTOMER"
	MovementReturnToSupplier   MovementType = "RETURN_TO_SUPPLIER"
	MovementDamaged            MovementType = "DAMAGED"
	MovementExpired            MovementType = "EXPIRED"
	MovementTransferIn         MovementType = "TRANSFER_IN"
	MovementTransferOut        MovementType = "TRANSFER_OUT"
)

// Direction sentido en que un tipo de movimiento afecta el stock.
type Direction int

const (
	DirectionAddition    Direction = iota + 1 // suma la cantidad tal como llega
	DirectionSubtraction                      // resta |cantidad|
	DirectionSigned                           // usa la cantidad tal como llega (positiva o negativa)
)

type movementTypeInfo struct {
	description string
	direction   Direction
}

var movementTypes = map[MovementType]movementTypeInfo{
	MovementReceipt:            {"Receipt", DirectionAddition},
	MovementTransfer:           {"Transfer", DirectionSigned},
	MovementAdjustment:         {"Adjustment", DirectionSigned},
	MovementPurchaseReceive:    {"Purchase Receive", DirectionAddition},
	MovementSalesDeduct:        {"Sales Deduct", DirectionSubtraction},
	MovementAdjustmentAdd:      {"Adjustment Add", DirectionAddition},
	MovementAdjustmentDeduct:   {"Adjustment Deduct", DirectionSubtraction},
	MovementReturnFromCustomer: {"Return from Customer", DirectionAddition},
	MovementReturnToSupplier:   {"Return to Supplier", DirectionSubtraction},
	MovementDamaged:            {"Damaged", DirectionSubtraction},
	MovementExpired:            {"Expired", DirectionSubtraction},
	MovementTransferIn:         {"Transfer In", DirectionAddition},
	MovementTransferOut:        {"Transfer Out", DirectionSubtraction},
}

// MovementTypes devuelve todos los tipos válidos en orden estable.
func MovementTypes() []MovementType {
	return []MovementType{
		MovementReceipt, MovementTransfer, MovementAdjustment,
		MovementPurchaseReceive, MovementSalesDeduct,
		MovementAdjustmentAdd, MovementAdjustmentDeduct,
		MovementReturnFromCustomer, MovementReturnToSupplier,
		MovementDamaged, MovementExpired,
		MovementTransferIn, MovementTransferOut,
	}
}

// ParseMovementType convierte un texto (sin distinguir mayúsculas) en MovementType.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", domain.Invalid("tipo de movimiento desconocido: %q", s)
	}
	return t, nil
}

// Valid indica si el tipo pertenece a la enumeración.
func (t MovementType) Valid() bool {
	_, ok := movementTypes[t]
	return ok
}

// Description texto legible del tipo.
func (t MovementType) Description() string {
	return movementTypes[t].description
}

// Direction sentido del tipo; cero si el tipo no es válido.
func (t MovementType) Direction() Direction {
	return movementTypes[t].direction
}

// IsAddition verdadero para tipos que siempre suman.
func (t MovementType) IsAddition() bool {
	return t.Direction() == DirectionAddition
}

// IsRestock verdadero para los tipos que actualizan la fecha de último reabastecimiento.
func (t MovementType) IsRestock() bool {
	return t == MovementReceipt || t == MovementPurchaseReceive
}

// Delta cantidad con signo que el movimiento aplica al stock.
// Solo los tipos de salida normalizan el signo; el resto suma la cantidad recibida.
func (t MovementType) Delta(quantity int) int {
	if t.Direction() == DirectionSubtraction {
		if quantity < 0 {
			return quantity
		}
		return -quantity
	}
	return quantity
}
