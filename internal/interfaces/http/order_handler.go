package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-stock/internal/application/dto"
	"github.com/jhoicas/pos-stock/internal/application/orders"
)

// OrderHandler aplica órdenes al stock y procesa pagos (protegido).
type OrderHandler struct {
	uc *orders.FulfillmentUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.FulfillmentUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Fulfill godoc
// @Summary      Aplicar orden de venta o compra al stock
// @Description  Un movimiento por línea en una sola transacción; si una línea falla no se aplica ninguna.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillOrderRequest  true  "number, kind (SALES|PURCHASE), items"
// @Success      201   {object}  dto.FulfillOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/fulfill [post]
func (h *OrderHandler) Fulfill(c *fiber.Ctx) error {
	var in dto.FulfillOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	by, ok := processedBy(c, in.ProcessedBy)
	if !ok {
		return forbidden(c, otherEmployeeMsg)
	}
	out, err := h.uc.Fulfill(c.UserContext(), in.ToOrder(by), by)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProcessPayment godoc
// @Summary      Procesar pago (CASH o CARD)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessPaymentRequest  true  "kind, amount, order_total y datos del medio de pago"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments/process [post]
func (h *OrderHandler) ProcessPayment(c *fiber.Ctx) error {
	var in dto.ProcessPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ProcessPayment(c.UserContext(), in.ToPayment(GetEmployeeID(c)), in.OrderTotal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
