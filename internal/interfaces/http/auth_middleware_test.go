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

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	httpiface "github.com/estoqueapp/estoque-api/internal/interfaces/http"
	"github.com/estoqueapp/estoque-api/pkg/jwt"
)

const (
	testJWTSecret   = "secreto-de-pruebas-no-usar-en-produccion"
	testUserID      = "00000000-0000-0000-0000-000000000001"
	testSubsectorID = "00000000-0000-0000-0000-0000000000f1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp app mínima con una ruta protegida por auth y otra solo-admin.
func buildTestApp() *fiber.App {
	app := fiber.New()

	protected := app.Group("/api", httpiface.AuthMiddleware(testJWTSecret))
	protected.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":      httpiface.GetUserID(c),
			"subsector_id": httpiface.GetSubsectorID(c),
			"role":         httpiface.GetRole(c),
		})
	})
	protected.Post("/solo-admin", httpiface.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testJWTSecret, testUserID, testSubsectorID, role, "estoque-api-test", 15)
	require.NoError(t, err, "generar el token de prueba no debe fallar")
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	return errResp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeError(t, resp).Code)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

func TestAuthMiddleware_TokenAdulterado(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/perfil", tokenForRole(t, "admin")+"x")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate("otro-secreto", testUserID, testSubsectorID, "admin", "estoque-api-test", 15)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/perfil", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Un token válido expone los claims en el contexto de la petición.
func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/perfil", tokenForRole(t, "operador"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var claims map[string]string
	require.NoError(t, json.Unmarshal(body, &claims))

	assert.Equal(t, testUserID, claims["user_id"])
	assert.Equal(t, testSubsectorID, claims["subsector_id"])
	assert.Equal(t, "operador", claims["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodPost, "/api/solo-admin", tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_OperadorRechazado(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodPost, "/api/solo-admin", tokenForRole(t, "operador"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodPost, "/api/solo-admin", tokenForRole(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", decodeError(t, resp).Code)
}
