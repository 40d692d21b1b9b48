package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/pos-stock/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-stock/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testEmployeeID = "emp-0001"
	testIssuer     = "pos-stock-test"
	testExpMin     = 60
)

// buildAuthApp app mínima con AuthMiddleware + RequireRole y un handler que devuelve los locals.
func buildAuthApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"employee_id": apphttp.GetEmployeeID(c),
				"role":        apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un header Authorization con el rol indicado.
func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testEmployeeID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	resp := doGet(t, buildAuthApp(pkgjwt.RoleCashier), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeMap(t, resp)["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	resp := doGet(t, buildAuthApp(pkgjwt.RoleCashier), "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeMap(t, resp)["code"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testEmployeeID, pkgjwt.RoleCashier, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doGet(t, buildAuthApp(pkgjwt.RoleCashier), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaEmpleadoYRol(t *testing.T) {
	resp := doGet(t, buildAuthApp(pkgjwt.RoleCashier), tokenFor(t, pkgjwt.RoleCashier))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, testEmployeeID, body["employee_id"])
	assert.Equal(t, pkgjwt.RoleCashier, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RolPermitido(t *testing.T) {
	resp := doGet(t, buildAuthApp(pkgjwt.RoleManager, pkgjwt.RoleStockClerk), tokenFor(t, pkgjwt.RoleStockClerk))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_CajeroNoAccedeRutaSupervisor(t *testing.T) {
	resp := doGet(t, buildAuthApp(pkgjwt.RoleManager), tokenFor(t, pkgjwt.RoleCashier))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeMap(t, resp)["code"])
}
