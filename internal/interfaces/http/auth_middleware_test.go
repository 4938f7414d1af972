package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Estoque-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	mwSecret = "secreto-de-middleware"
	mwClient = "cliente-7"
)

// bearer firma un token para userID con tenant y rol dados.
func bearer(t *testing.T, tenantID, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(mwSecret, mwClient, tenantID, role, "estoque-api", expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call hace GET path y devuelve status y el código de error, si lo hay.
func call(t *testing.T, app *fiber.App, path, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return resp.StatusCode, ""
	}
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Code
}

// tenantEcho devuelve el tenant armado por el middleware.
func tenantEcho(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user_id":   apphttp.GetUserID(c),
		"tenant_id": apphttp.GetTenantID(c),
		"role":      apphttp.GetRole(c),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaTenantDelToken(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(mwSecret), tenantEcho)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, mwClient, domain.RoleClient, 60))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{
		"user_id":   mwClient,
		"tenant_id": mwClient,
		"role":      domain.RoleClient,
	}, body, "el tenant de un cliente es su propio id")
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(mwSecret), tenantEcho)

	otroSecreto, err := pkgjwt.Generate("otro-secreto", mwClient, mwClient, domain.RoleClient, "estoque-api", 60)
	require.NoError(t, err)

	tests := []struct {
		name string
		auth string
		code string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"esquema basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"bearer vacío", "Bearer   ", "MISSING_TOKEN"},
		{"firma ajena", "Bearer " + otroSecreto, "INVALID_TOKEN"},
		{"expirado", bearer(t, mwClient, domain.RoleClient, -1), "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := call(t, app, "/me", tt.auth)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func adminApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin/clients",
		apphttp.AuthMiddleware(mwSecret),
		apphttp.RequireRole(domain.RoleAdmin),
		tenantEcho,
	)
	return app
}

func TestRequireRole_AdminPasa(t *testing.T) {
	status, _ := call(t, adminApp(), "/admin/clients", bearer(t, "", domain.RoleAdmin, 60))
	assert.Equal(t, http.StatusOK, status)
}

func TestRequireRole_ClienteEsForbidden(t *testing.T) {
	status, code := call(t, adminApp(), "/admin/clients", bearer(t, mwClient, domain.RoleClient, 60))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", code)
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	status, code := call(t, adminApp(), "/admin/clients", bearer(t, mwClient, "", 60))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", code)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireFeature
// ──────────────────────────────────────────────────────────────────────────────

// stubFeatures responde HasFeature con valores fijos y anota la última consulta.
type stubFeatures struct {
	enabled bool
	err     error

	calls   int
	tenant  domain.Tenant
	feature entity.Feature
}

func (s *stubFeatures) HasFeature(_ context.Context, tenant domain.Tenant, feature entity.Feature) (bool, error) {
	s.calls++
	s.tenant = tenant
	s.feature = feature
	return s.enabled, s.err
}

func reportsApp(checker *stubFeatures) *fiber.App {
	app := fiber.New()
	app.Get("/reports/inventory",
		apphttp.AuthMiddleware(mwSecret),
		apphttp.RequireFeature(entity.FeatureReports, checker),
		tenantEcho,
	)
	return app
}

func TestRequireFeature_Activa(t *testing.T) {
	checker := &stubFeatures{enabled: true}
	status, _ := call(t, reportsApp(checker), "/reports/inventory", bearer(t, mwClient, domain.RoleClient, 60))

	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, checker.calls)
	assert.Equal(t, entity.FeatureReports, checker.feature)
	assert.Equal(t, domain.Tenant{ID: mwClient, UserID: mwClient, Role: domain.RoleClient}, checker.tenant)
}

func TestRequireFeature_Apagada(t *testing.T) {
	checker := &stubFeatures{enabled: false}
	status, code := call(t, reportsApp(checker), "/reports/inventory", bearer(t, mwClient, domain.RoleClient, 60))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FEATURE_DISABLED", code)
}

func TestRequireFeature_FalloAlLeerConfiguracion(t *testing.T) {
	checker := &stubFeatures{err: errors.New("connection refused")}
	status, code := call(t, reportsApp(checker), "/reports/inventory", bearer(t, mwClient, domain.RoleClient, 60))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "FEATURE_CHECK_FAILED", code)
}

func TestRequireFeature_SinTenant(t *testing.T) {
	checker := &stubFeatures{enabled: true}
	status, code := call(t, reportsApp(checker), "/reports/inventory", bearer(t, "", domain.RoleClient, 60))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
	assert.Zero(t, checker.calls, "sin tenant no se consulta la configuración")
}
