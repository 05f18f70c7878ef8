package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/haccp-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/haccp-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testUserEmail  = "chef@ejemplo.com"
	testLocationID = "00000000-0000-0000-0000-00000000000a"
	testIssuer     = "haccp-pro-test"
	testExpMin     = 60
)

// fakeAccess implementa accessChecker en memoria: mapas de acceso y gestión
// por par usuario/local.
type fakeAccess struct {
	access  map[string]bool
	manager map[string]bool
	err     error
}

func (f *fakeAccess) HasLocationAccess(_ context.Context, userID, locationID string) (bool, error) {
	return f.access[userID+"/"+locationID], f.err
}

func (f *fakeAccess) IsLocationManager(_ context.Context, userID, locationID string) (bool, error) {
	return f.manager[userID+"/"+locationID], f.err
}

// fakeSubscription implementa subscriptionChecker.
type fakeSubscription struct {
	active bool
	err    error
}

func (f *fakeSubscription) HasActiveSubscription(_ context.Context, _ string) (bool, error) {
	return f.active, f.err
}

// buildLocationApp monta una ruta /locations/:locationId protegida con
// AuthMiddleware y el middleware de acceso indicado.
func buildLocationApp(mw fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/locations/:locationId",
		apphttp.AuthMiddleware(testJWTSecret),
		mw,
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

// testToken genera un JWT válido para el usuario de test.
func testToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserEmail, testIssuer, testExpMin)
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

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetUserEmail(c),
		})
	})

	resp := doRequest(t, app, "/me", testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUserEmail, body["email"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp := doRequest(t, app, "/me", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp := doRequest(t, app, "/me", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireLocationAccess / RequireLocationManager
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireLocationAccess_ConAcceso_Pasa(t *testing.T) {
	checker := &fakeAccess{access: map[string]bool{testUserID + "/" + testLocationID: true}}
	app := buildLocationApp(apphttp.RequireLocationAccess(checker))

	resp := doRequest(t, app, "/locations/"+testLocationID, testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"usuario con acceso al local debe pasar")
}

func TestRequireLocationAccess_SinAcceso_Retorna403(t *testing.T) {
	checker := &fakeAccess{access: map[string]bool{}}
	app := buildLocationApp(apphttp.RequireLocationAccess(checker))

	resp := doRequest(t, app, "/locations/"+testLocationID, testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NO_LOCATION_ACCESS")
}

func TestRequireLocationManager_EmpleadoBloqueado(t *testing.T) {
	// Con acceso pero sin rol admin: puede entrar, no gestionar.
	checker := &fakeAccess{
		access:  map[string]bool{testUserID + "/" + testLocationID: true},
		manager: map[string]bool{},
	}
	app := buildLocationApp(apphttp.RequireLocationManager(checker))

	resp := doRequest(t, app, "/locations/"+testLocationID, testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_LOCATION_MANAGER")
}

func TestRequireLocationAccess_ErrorDeInfra_Retorna503(t *testing.T) {
	checker := &fakeAccess{err: assert.AnError}
	app := buildLocationApp(apphttp.RequireLocationAccess(checker))

	resp := doRequest(t, app, "/locations/"+testLocationID, testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireActiveSubscription
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireActiveSubscription_Activa_Pasa(t *testing.T) {
	app := fiber.New()
	app.Get("/panel",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireActiveSubscription(&fakeSubscription{active: true}),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)

	resp := doRequest(t, app, "/panel", testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireActiveSubscription_SinSuscripcion_Retorna402(t *testing.T) {
	app := fiber.New()
	app.Get("/panel",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireActiveSubscription(&fakeSubscription{active: false}),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)

	resp := doRequest(t, app, "/panel", testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SUBSCRIPTION_REQUIRED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserEmail, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testUserEmail, email)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserEmail, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserEmail, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
