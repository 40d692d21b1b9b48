package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-stock/internal/application/dto"
	"github.com/jhoicas/pos-stock/internal/application/inventory"
	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// MovementHandler maneja el libro de movimientos de stock (protegido).
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar movimiento de stock
// @Description  Los tipos de salida restan |quantity|; el resto aplica quantity tal cual (puede ser negativa).
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, type, quantity, reference_number"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return writeError(c, err)
	}
	by, ok := processedBy(c, in.ProcessedBy)
	if !ok {
		return forbidden(c, otherEmployeeMsg)
	}
	out, err := h.uc.RecordMovement(c.UserContext(), &entity.StockMovement{
		ProductID:       in.ProductID,
		Type:            t,
		Quantity:        in.Quantity,
		ReferenceNumber: in.ReferenceNumber,
		Reason:          in.Reason,
		UnitCost:        in.UnitCost,
		ProcessedBy:     by,
		Notes:           in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjustment godoc
// @Summary      Ajuste de stock (cantidad con signo)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/movements/adjustments [post]
func (h *MovementHandler) Adjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	by, ok := processedBy(c, in.ProcessedBy)
	if !ok {
		return forbidden(c, otherEmployeeMsg)
	}
	out, err := h.uc.RecordAdjustment(c.UserContext(), in.ProductID, in.Quantity, in.Reason, in.UnitCost, by, in.Notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Entrada de mercancía
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "product_id, quantity > 0, reference_number, unit_cost"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/movements/receipts [post]
func (h *MovementHandler) Receipt(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	by, ok := processedBy(c, in.ProcessedBy)
	if !ok {
		return forbidden(c, otherEmployeeMsg)
	}
	out, err := h.uc.RecordReceipt(c.UserContext(), in.ProductID, in.Quantity, in.ReferenceNumber, in.UnitCost, by, in.Notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Traslado saliente
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, quantity > 0, reference_number"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/movements/transfers [post]
func (h *MovementHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	by, ok := processedBy(c, in.ProcessedBy)
	if !ok {
		return forbidden(c, otherEmployeeMsg)
	}
	out, err := h.uc.RecordTransfer(c.UserContext(), in.ProductID, in.Quantity, in.ReferenceNumber, in.Reason, by, in.Notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAllMovements(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        from       query  string  false  "RFC3339 o YYYY-MM-DD (inclusive)"
// @Param        to         query  string  false  "RFC3339 o YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements/product/{productId} [get]
func (h *MovementHandler) ByProduct(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c.Query("from"), false)
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseTimeQuery(c.Query("to"), true)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetMovementsByProduct(c.UserContext(), c.Params("productId"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByReference godoc
// @Summary      Movimientos por número de referencia
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "número de referencia (ej: número de orden)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements/reference/{ref} [get]
func (h *MovementHandler) ByReference(c *fiber.Ctx) error {
	ref, err := url.PathUnescape(c.Params("ref"))
	if err != nil {
		return writeError(c, domain.Invalid("referencia mal codificada: %q", c.Params("ref")))
	}
	out, err := h.uc.GetMovementsByReference(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseTimeQuery acepta RFC3339 o fecha sola; una fecha sola como límite superior cubre el día completo.
func parseTimeQuery(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, domain.Invalid("fecha inválida %q (use RFC3339 o YYYY-MM-DD)", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
