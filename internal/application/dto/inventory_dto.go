package dto

import (
	"time"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// CreateInventoryRequest body para POST /api/inventory.
type CreateInventoryRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimum_stock"`
	MaximumStock int    `json:"maximum_stock"` // 0 = sin límite
	Location     string `json:"location"`
	BinNumber    string `json:"bin_number"`
	ProcessedBy  string `json:"processed_by,omitempty"` // por defecto, el empleado del token
}

// UpdateInventoryRequest body para PUT /api/inventory/:id. La cantidad solo cambia vía operaciones de stock.
type UpdateInventoryRequest struct {
	MinimumStock *int    `json:"minimum_stock"`
	MaximumStock *int    `json:"maximum_stock"`
	Location     *string `json:"location"`
	BinNumber    *string `json:"bin_number"`
	IsActive     *bool   `json:"is_active"`
}

// StockQuantityRequest body para add/remove/stock-check.
type StockQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID                 string     `json:"id"`
	ProductID          string     `json:"product_id"`
	Quantity           int        `json:"quantity"`
	MinimumStock       int        `json:"minimum_stock"`
	MaximumStock       int        `json:"maximum_stock"`
	Location           string     `json:"location"`
	BinNumber          string     `json:"bin_number"`
	LowStock           bool       `json:"low_stock"`
	LastRestockDate    *time.Time `json:"last_restock_date,omitempty"`
	LastStockCheckDate *time.Time `json:"last_stock_check_date,omitempty"`
	Version            int        `json:"version"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// InventoryListResponse lista de inventarios.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Total int                 `json:"total"`
}

// ToInventoryResponse convierte la entidad en su representación de salida.
func ToInventoryResponse(i *entity.Inventory) *InventoryResponse {
	if i == nil {
		return nil
	}
	return &InventoryResponse{
		ID:                 i.ID,
		ProductID:          i.ProductID,
		Quantity:           i.Quantity,
		MinimumStock:       i.MinimumStock,
		MaximumStock:       i.MaximumStock,
		Location:           i.Location,
		BinNumber:          i.BinNumber,
		LowStock:           i.IsLowStock(),
		LastRestockDate:    i.LastRestockDate,
		LastStockCheckDate: i.LastStockCheckDate,
		Version:            i.Version,
		IsActive:           i.IsActive,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

// ToInventoryList convierte una lista de entidades.
func ToInventoryList(list []*entity.Inventory) *InventoryListResponse {
	items := make([]InventoryResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *ToInventoryResponse(i))
	}
	return &InventoryListResponse{Items: items, Total: len(items)}
}
