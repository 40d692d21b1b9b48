package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-stock/internal/application/dto"
	"github.com/jhoicas/pos-stock/internal/bootstrap"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/infrastructure/memory"
	"github.com/jhoicas/pos-stock/pkg/config"
	pkgjwt "github.com/jhoicas/pos-stock/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI app completa sobre un almacén en memoria con un producto y el empleado del token.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.AddProduct(&entity.Product{ID: "p1", Code: "SKU-1", Name: "Café 500g", Price: decimal.NewFromInt(12), CostPrice: decimal.NewFromInt(8), IsActive: true})
	store.AddProduct(&entity.Product{ID: "p2", Code: "SKU-2", Name: "Azúcar 1kg", Price: decimal.NewFromInt(4), CostPrice: decimal.NewFromInt(2), IsActive: true})
	store.AddEmployee(&entity.Employee{ID: testEmployeeID, EmployeeCode: "E1", FirstName: "Ana", Status: entity.EmployeeActive})

	cfg := &config.Config{
		App: config.AppConfig{Name: "pos-stock-test"},
		JWT: config.JWTConfig{Secret: testJWTSecret},
	}
	return bootstrap.NewInMemory(cfg, zerolog.Nop(), store).HTTPApp()
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenFor(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func createInventory(t *testing.T, app *fiber.App, productID string, qty, min, max int) dto.InventoryResponse {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/inventory", pkgjwt.RoleManager, dto.CreateInventoryRequest{
		ProductID: productID, Quantity: qty, MinimumStock: min, MaximumStock: max, Location: "A-1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var out dto.InventoryResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_SinToken(t *testing.T) {
	resp, _ := call(t, buildAPI(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPI_RequiereToken(t *testing.T) {
	resp, _ := call(t, buildAPI(t), http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInventory_CreateRegistraMovimientoInicial(t *testing.T) {
	app := buildAPI(t)
	inv := createInventory(t, app, "p1", 20, 5, 100)
	assert.Equal(t, 20, inv.Quantity)
	assert.Equal(t, 1, inv.Version)
	assert.NotNil(t, inv.LastRestockDate)

	resp, raw := call(t, app, http.MethodGet, "/api/movements/product/p1", pkgjwt.RoleCashier, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Equal(t, 1, list.Total)
	m := list.Items[0]
	assert.Equal(t, "RECEIPT", m.Type)
	assert.Equal(t, 20, m.Quantity)
	assert.Equal(t, 0, m.PreviousStock)
	assert.Equal(t, 20, m.NewStock)
	assert.Equal(t, testEmployeeID, m.ProcessedBy)
	assert.True(t, m.UnitCost.Equal(decimal.NewFromInt(8)))
	assert.Regexp(t, `^INIT-\d+$`, m.ReferenceNumber)
}

func TestInventory_CreateDuplicado(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 0, 0, 0)
	resp, raw := call(t, app, http.MethodPost, "/api/inventory", pkgjwt.RoleManager, dto.CreateInventoryRequest{ProductID: "p1"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, raw))
}

func TestInventory_ProductoInexistente(t *testing.T) {
	resp, raw := call(t, buildAPI(t), http.MethodPost, "/api/inventory", pkgjwt.RoleManager, dto.CreateInventoryRequest{ProductID: "nope"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

func TestInventory_CajeroNoPuedeCrear(t *testing.T) {
	resp, _ := call(t, buildAPI(t), http.MethodPost, "/api/inventory", pkgjwt.RoleCashier, dto.CreateInventoryRequest{ProductID: "p1"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestInventory_RemoveStockInsuficiente(t *testing.T) {
	app := buildAPI(t)
	inv := createInventory(t, app, "p1", 3, 0, 0)
	resp, raw := call(t, app, http.MethodPost, "/api/inventory/"+inv.ID+"/remove", pkgjwt.RoleStockClerk, dto.StockQuantityRequest{Quantity: 5})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, raw))
}

func TestInventory_LowStockYStockCheck(t *testing.T) {
	app := buildAPI(t)
	inv := createInventory(t, app, "p1", 10, 5, 0)
	createInventory(t, app, "p2", 50, 5, 0)

	resp, raw := call(t, app, http.MethodPost, "/api/inventory/"+inv.ID+"/stock-check", pkgjwt.RoleManager, dto.StockQuantityRequest{Quantity: 4})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var checked dto.InventoryResponse
	require.NoError(t, json.Unmarshal(raw, &checked))
	assert.Equal(t, 4, checked.Quantity)
	assert.True(t, checked.LowStock)
	assert.NotNil(t, checked.LastStockCheckDate)
	assert.Equal(t, 2, checked.Version)

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/low-stock", pkgjwt.RoleCashier, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var low dto.InventoryListResponse
	require.NoError(t, json.Unmarshal(raw, &low))
	require.Equal(t, 1, low.Total)
	assert.Equal(t, "p1", low.Items[0].ProductID)
}

func TestInventory_GetByProductNoEncontrado(t *testing.T) {
	resp, _ := call(t, buildAPI(t), http.MethodGet, "/api/inventory/product/p2", pkgjwt.RoleCashier, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_ReceiptExcedeMaximo(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 95, 0, 100)
	resp, raw := call(t, app, http.MethodPost, "/api/movements/receipts", pkgjwt.RoleStockClerk, dto.ReceiptRequest{
		ProductID: "p1", Quantity: 10, ReferenceNumber: "PO-1", UnitCost: decimal.NewFromInt(8),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestMovements_TransferSaliente(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 40, 0, 0)
	resp, raw := call(t, app, http.MethodPost, "/api/movements/transfers", pkgjwt.RoleStockClerk, dto.TransferRequest{
		ProductID: "p1", Quantity: 30, ReferenceNumber: "TR-1", Reason: "sucursal norte",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var m dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, -30, m.Quantity)
	assert.Equal(t, 40, m.PreviousStock)
	assert.Equal(t, 10, m.NewStock)
	assert.True(t, m.UnitCost.IsZero())
}

func TestMovements_TipoDesconocido(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 5, 0, 0)
	resp, raw := call(t, app, http.MethodPost, "/api/movements", pkgjwt.RoleCashier, dto.RecordMovementRequest{
		ProductID: "p1", Type: "TELEPORT", Quantity: 1, ReferenceNumber: "X",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestMovements_AjusteSoloManager(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 5, 0, 0)
	body := dto.AdjustmentRequest{ProductID: "p1", Quantity: -2, Reason: "merma"}

	resp, _ := call(t, app, http.MethodPost, "/api/movements/adjustments", pkgjwt.RoleStockClerk, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, raw := call(t, app, http.MethodPost, "/api/movements/adjustments", pkgjwt.RoleManager, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var m dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, 3, m.NewStock)
	assert.Regexp(t, `^ADJ-\d+$`, m.ReferenceNumber)
}

func TestMovements_RangoDeFechasInvalido(t *testing.T) {
	resp, _ := call(t, buildAPI(t), http.MethodGet, "/api/movements/product/p1?from=2024-05-02&to=2024-05-01", pkgjwt.RoleCashier, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, buildAPI(t), http.MethodGet, "/api/movements/product/p1?from=ayer", pkgjwt.RoleCashier, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMovements_ReferenciaConCaracteresEscapados(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 10, 0, 0)

	resp, raw := call(t, app, http.MethodPost, "/api/movements/receipts", pkgjwt.RoleStockClerk, dto.ReceiptRequest{
		ProductID: "p1", Quantity: 2, ReferenceNumber: "PO 1/B", UnitCost: decimal.NewFromInt(3),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/movements/reference/PO%201%2FB", pkgjwt.RoleCashier, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var list dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "PO 1/B", list.Items[0].ReferenceNumber)
}

func TestMovements_ProcessedByDeOtroEmpleadoSoloGerente(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 10, 0, 0)
	body := dto.RecordMovementRequest{
		ProductID: "p1", Type: "SALES_DEDUCT", Quantity: 1, ReferenceNumber: "SO-9", ProcessedBy: "otro-empleado",
	}

	resp, raw := call(t, app, http.MethodPost, "/api/movements", pkgjwt.RoleCashier, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, raw))

	// el gerente puede indicarlo; el empleado inexistente se reporta como no encontrado
	resp, raw = call(t, app, http.MethodPost, "/api/movements", pkgjwt.RoleManager, body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, string(raw))

	body.ProcessedBy = testEmployeeID
	resp, raw = call(t, app, http.MethodPost, "/api/movements", pkgjwt.RoleCashier, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var m dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, testEmployeeID, m.ProcessedBy)
	assert.Equal(t, 9, m.NewStock)
}

func TestMovements_GetByIDNoEncontrado(t *testing.T) {
	resp, raw := call(t, buildAPI(t), http.MethodGet, "/api/movements/nope", pkgjwt.RoleCashier, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes y pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_VentaDescuentaYSeConsultaPorReferencia(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 10, 0, 0)
	createInventory(t, app, "p2", 10, 0, 0)

	resp, raw := call(t, app, http.MethodPost, "/api/orders/fulfill", pkgjwt.RoleCashier, dto.FulfillOrderRequest{
		Number: "SO-100",
		Kind:   "SALES",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(12)},
			{ProductID: "p2", Quantity: 3, UnitPrice: decimal.NewFromInt(4)},
		},
		Tax: decimal.NewFromInt(2),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var out dto.FulfillOrderResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "COMPLETED", out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(38)), out.Total.String())
	require.Len(t, out.Movements, 2)

	resp, raw = call(t, app, http.MethodGet, "/api/movements/reference/SO-100", pkgjwt.RoleCashier, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 2, list.Total)
	for _, m := range list.Items {
		assert.Equal(t, "SALES_DEDUCT", m.Type)
		assert.Negative(t, m.Quantity)
	}
}

func TestOrders_VentaSinStockNoAplicaNada(t *testing.T) {
	app := buildAPI(t)
	createInventory(t, app, "p1", 10, 0, 0)
	createInventory(t, app, "p2", 1, 0, 0)

	resp, raw := call(t, app, http.MethodPost, "/api/orders/fulfill", pkgjwt.RoleCashier, dto.FulfillOrderRequest{
		Number: "SO-101",
		Kind:   "SALES",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(12)},
			{ProductID: "p2", Quantity: 3, UnitPrice: decimal.NewFromInt(4)},
		},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, raw))

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/product/p1", pkgjwt.RoleCashier, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var inv dto.InventoryResponse
	require.NoError(t, json.Unmarshal(raw, &inv))
	assert.Equal(t, 10, inv.Quantity)
}

func TestPayments_EfectivoConCambio(t *testing.T) {
	resp, raw := call(t, buildAPI(t), http.MethodPost, "/api/payments/process", pkgjwt.RoleCashier, dto.ProcessPaymentRequest{
		ReferenceNumber: "PAY-1",
		Kind:            "CASH",
		Amount:          decimal.NewFromInt(38),
		OrderTotal:      decimal.NewFromInt(38),
		CashReceived:    decimal.NewFromInt(50),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var out dto.PaymentResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "COMPLETED", out.Status)
	assert.True(t, out.Change.Equal(decimal.NewFromInt(12)))
}

func TestPayments_MontoSuperaTotal(t *testing.T) {
	resp, _ := call(t, buildAPI(t), http.MethodPost, "/api/payments/process", pkgjwt.RoleCashier, dto.ProcessPaymentRequest{
		ReferenceNumber: "PAY-2",
		Kind:            "CASH",
		Amount:          decimal.NewFromInt(40),
		OrderTotal:      decimal.NewFromInt(38),
		CashReceived:    decimal.NewFromInt(50),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
