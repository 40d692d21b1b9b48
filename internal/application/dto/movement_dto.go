package dto

import (
	"time"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
type RecordMovementRequest struct {
	ProductID       string          `json:"product_id"`
	Type            string          `json:"type"`
	Quantity        int             `json:"quantity"`
	ReferenceNumber string          `json:"reference_number"`
	Reason          string          `json:"reason"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ProcessedBy     string          `json:"processed_by,omitempty"`
	Notes           string          `json:"notes"`
}

// AdjustmentRequest body para POST /api/movements/adjustments. Quantity con signo.
type AdjustmentRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	ProcessedBy string          `json:"processed_by,omitempty"`
	Notes       string          `json:"notes"`
}

// ReceiptRequest body para POST /api/movements/receipts.
type ReceiptRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	ReferenceNumber string          `json:"reference_number"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ProcessedBy     string          `json:"processed_by,omitempty"`
	Notes           string          `json:"notes"`
}

// TransferRequest body para POST /api/movements/transfers (salida).
type TransferRequest struct {
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
	ReferenceNumber string `json:"reference_number"`
	Reason          string `json:"reason"`
	ProcessedBy     string `json:"processed_by,omitempty"`
	Notes           string `json:"notes"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Type            string          `json:"type"`
	TypeDescription string          `json:"type_description"`
	Quantity        int             `json:"quantity"`
	ReferenceNumber string          `json:"reference_number"`
	Reason          string          `json:"reason"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	ProcessedBy     string          `json:"processed_by"`
	Notes           string          `json:"notes"`
	PreviousStock   int             `json:"previous_stock"`
	NewStock        int             `json:"new_stock"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MovementListResponse lista de movimientos (más reciente primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// ToMovementResponse convierte la entidad en su representación de salida.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Type:            string(m.Type),
		TypeDescription: m.Type.Description(),
		Quantity:        m.Quantity,
		ReferenceNumber: m.ReferenceNumber,
		Reason:          m.Reason,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost(),
		ProcessedBy:     m.ProcessedBy,
		Notes:           m.Notes,
		PreviousStock:   m.PreviousStock,
		NewStock:        m.NewStock,
		CreatedAt:       m.CreatedAt,
	}
}

// ToMovementList convierte una lista de entidades.
func ToMovementList(list []*entity.StockMovement) *MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &MovementListResponse{Items: items, Total: len(items)}
}
