package orders

import (
	"context"
	"time"

	"github.com/jhoicas/pos-stock/internal/application/dto"
	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/domain/order"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FulfillmentUseCase aplica órdenes de venta y compra al stock en una sola transacción.
type FulfillmentUseCase struct {
	txRunner TxRunner
	recorder MovementRecorder
	log      zerolog.Logger
}

// NewFulfillmentUseCase construye el caso de uso.
func NewFulfillmentUseCase(txRunner TxRunner, recorder MovementRecorder, log zerolog.Logger) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		txRunner: txRunner,
		recorder: recorder,
		log:      log.With().Str("component", "orders").Logger(),
	}
}

// Fulfill valida la orden, calcula su total y registra un movimiento por línea
// (SALES_DEDUCT en ventas, PURCHASE_RECEIVE en compras) con el número de orden como referencia.
// Si una línea falla (ej: stock insuficiente) se revierte toda la orden.
func (uc *FulfillmentUseCase) Fulfill(ctx context.Context, o *order.Order, processedBy string) (*dto.FulfillOrderResponse, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status != "" && o.Status != order.StatusPending {
		return nil, domain.Invalid("solo se pueden aplicar órdenes pendientes (estado %s)", o.Status)
	}
	total, err := order.CalculateTotal(o)
	if err != nil {
		return nil, err
	}
	movType, err := order.MovementTypeFor(o.Kind)
	if err != nil {
		return nil, err
	}

	// Validar referencias fuera de la tx (solo lectura)
	movements := make([]*entity.StockMovement, 0, len(o.Items))
	for _, it := range o.Items {
		m := &entity.StockMovement{
			ProductID:       it.ProductID,
			Type:            movType,
			Quantity:        it.Quantity,
			ReferenceNumber: o.Number,
			Reason:          string(o.Kind) + " order",
			UnitCost:        it.UnitPrice,
			ProcessedBy:     processedBy,
			Notes:           it.Notes,
		}
		if err := uc.recorder.CheckReferences(ctx, m); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		for _, m := range movements {
			if err := uc.recorder.ApplyInTx(ctx, invRepo, movRepo, m, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.Infrastructure("fulfill order", err)
	}

	o.Status = order.StatusCompleted
	out := &dto.FulfillOrderResponse{
		Number:    o.Number,
		Kind:      string(o.Kind),
		Status:    string(o.Status),
		Total:     total,
		Movements: make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		uc.recorder.Committed(ctx, m)
		out.Movements = append(out.Movements, *dto.ToMovementResponse(m))
	}
	uc.log.Info().Str("order", o.Number).Str("kind", string(o.Kind)).Str("total", total.String()).Int("items", len(o.Items)).Msg("orden aplicada al stock")
	return out, nil
}

// ProcessPayment procesa el pago; si orderTotal es positivo el monto no puede superarlo.
func (uc *FulfillmentUseCase) ProcessPayment(_ context.Context, p *order.Payment, orderTotal decimal.Decimal) (*dto.PaymentResponse, error) {
	if orderTotal.IsPositive() && p.Amount.GreaterThan(orderTotal) {
		return nil, domain.Invalid("el monto %s supera el total de la orden %s", p.Amount, orderTotal)
	}
	if err := p.Process(time.Now()); err != nil {
		return nil, err
	}
	out := &dto.PaymentResponse{
		ReferenceNumber: p.ReferenceNumber,
		Kind:            string(p.Kind),
		Amount:          p.Amount,
		Status:          string(p.Status),
		Date:            p.Date,
	}
	if p.Cash != nil {
		out.Change = p.Cash.Change
	}
	uc.log.Info().Str("reference", p.ReferenceNumber).Str("kind", string(p.Kind)).Str("status", string(p.Status)).Msg("pago procesado")
	return out, nil
}
