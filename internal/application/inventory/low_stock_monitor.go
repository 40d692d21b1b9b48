package inventory

import (
	"context"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/rs/zerolog"
)

// LowStockMonitor revisa periódicamente los inventarios bajo el stock mínimo y emite alertas.
type LowStockMonitor struct {
	uc        *InventoryUseCase
	publisher EventPublisher
	log       zerolog.Logger
}

// NewLowStockMonitor construye el monitor. publisher puede ser nil.
func NewLowStockMonitor(uc *InventoryUseCase, publisher EventPublisher, log zerolog.Logger) *LowStockMonitor {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &LowStockMonitor{uc: uc, publisher: publisher, log: log.With().Str("component", "low_stock_monitor").Logger()}
}

// Check devuelve los inventarios en stock bajo, registrando y publicando una alerta por cada uno.
func (m *LowStockMonitor) Check(ctx context.Context) ([]*entity.Inventory, error) {
	list, err := m.uc.lowStock(ctx)
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		m.log.Warn().
			Str("inventory_id", inv.ID).
			Str("product_id", inv.ProductID).
			Int("quantity", inv.Quantity).
			Int("minimum_stock", inv.MinimumStock).
			Msg("stock bajo")
		if err := m.publisher.PublishLowStock(ctx, inv); err != nil {
			m.log.Warn().Err(err).Str("inventory_id", inv.ID).Msg("publicar alerta de stock bajo")
		}
	}
	m.log.Info().Int("total", len(list)).Msg("revisión de stock bajo completada")
	return list, nil
}

// Run adapta Check a un job programado (sin valor de retorno).
func (m *LowStockMonitor) Run() {
	if _, err := m.Check(context.Background()); err != nil {
		m.log.Error().Err(err).Msg("revisión de stock bajo")
	}
}
