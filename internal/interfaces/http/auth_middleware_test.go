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

	apphttp "github.com/plazave/plaza-api/internal/interfaces/http"
	pkgjwt "github.com/plazave/plaza-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "plaza-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireCompany sobre la ruta de facturación
//   - Handlers dummy que devuelven 200 si pasan los middlewares
func buildTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: solo JWT
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	// Ruta de facturación: JWT + empresa asociada
	app.Get("/billing",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCompany(),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

// tokenFor genera un JWT con la empresa y rol indicados.
func tokenFor(t *testing.T, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Token válido → pasa y los locals quedan cargados.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", tokenFor(t, testCompanyID, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, testUserID, payload["user_id"])
	assert.Equal(t, testCompanyID, payload["company_id"])
	assert.Equal(t, "admin", payload["role"])
}

// Caso 2: Sin header Authorization → 401.
func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: Header malformado (sin esquema Bearer) → 401.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", "Token abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: Token firmado con otro secret → 401.
func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()

	tok, err := pkgjwt.Generate("otro-secret", testUserID, testCompanyID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token expirado → 401.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireCompany
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: Token con empresa asociada → accede a facturación.
func TestRequireCompany_ConEmpresa(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/billing", tokenFor(t, testCompanyID, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 7: Token sin empresa (comprador del marketplace) → 403 en facturación.
func TestRequireCompany_SinEmpresa(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/billing", tokenFor(t, "", "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "NO_COMPANY", payload["code"])
}
