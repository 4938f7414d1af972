package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/admin"
	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "estoque-api-test"
)

type testServer struct {
	app         *fiber.App
	invitations *memory.InvitationRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	format := i18n.New("pt-BR")

	users := memory.NewUserRepository(store)
	settings := memory.NewClientSettingsRepository(store)
	invitations := memory.NewInvitationRepository(store)
	products := memory.NewProductRepository(store)
	categories := memory.NewCategoryRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	movements := memory.NewStockMovementRepository(store)
	analyticsRepo := memory.NewAnalyticsRepository(store)

	replenishment := inventory.NewReplenishmentUseCase(products)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(store, users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, log),
		ProductUC:     usecase.NewProductUseCase(products, categories, suppliers),
		CategoryUC:    usecase.NewCategoryUseCase(categories),
		SupplierUC:    usecase.NewSupplierUseCase(suppliers),
		SetupUC:       usecase.NewSetupUseCase(products, categories, suppliers, log),
		Features:      usecase.NewFeatureService(settings),
		Ledger:        inventory.NewLedgerUseCase(store, inventory.NewKeyedLocker(time.Second), movements, log),
		Replenishment: replenishment,
		Dashboard:     analytics.NewDashboardUseCase(products, analyticsRepo, format, time.UTC),
		Reports:       analytics.NewReportUseCase(products, users, pdf.NewMarotoPDFGenerator(), format, log),
		Invitations:   admin.NewInvitationUseCase(invitations, log),
		Clients:       admin.NewClientUseCase(users, settings, log),
		Stats:         admin.NewStatsUseCase(analyticsRepo),
		JWTSecret:     testJWTSecret,
	})
	return &testServer{app: app, invitations: invitations}
}

// call envía body como JSON y decodifica la respuesta en out (si no es nil).
func (s *testServer) call(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// signup registra y devuelve el token de login.
func (s *testServer) signup(t *testing.T, email, code string) string {
	t.Helper()
	resp := s.call(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Email: email, Password: "secreta123", FullName: "Usuario " + email, InvitationCode: code,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var login dto.LoginResponse
	resp = s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreta123"}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)
	return login.Token
}

// invitation inserta un código directamente en el repo.
func (s *testServer) invitation(t *testing.T, code, role string, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, s.invitations.Create(context.Background(), &entity.Invitation{
		ID: "inv-" + code, Code: code, Role: role, MaxUses: 1, ExpiresAt: expiresAt,
		IsActive: true, CreatedBy: "seed", CreatedAt: time.Now(),
	}))
}

func (s *testServer) adminToken(t *testing.T) string {
	s.invitation(t, "ADMIN001", domain.RoleAdmin, time.Now().Add(time.Hour))
	return s.signup(t, "admin@example.com", "ADMIN001")
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCliente_ProductoMovimientosYReportes(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "ana@example.com", "")

	var me dto.UserResponse
	resp := s.call(t, http.MethodGet, "/api/auth/me", token, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.RoleClient, me.Role)

	var p dto.ProductResponse
	resp = s.call(t, http.MethodPost, "/api/products", token, map[string]any{
		"sku": "CEL-001", "name": "Smartphone", "cost_price": "800", "sale_price": "1200",
		"initial_stock": 15, "minimum_stock": 5,
	}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(15), p.CurrentStock)

	// salida mayor al stock
	resp = s.call(t, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ProductID: p.ID, Direction: "out", Quantity: 16, Reason: "sale",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	var mov dto.MovementResponse
	resp = s.call(t, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ProductID: p.ID, Direction: "out", Quantity: 12, Reason: "sale",
	}, &mov)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(3), *mov.NewStock)

	var list dto.MovementListResponse
	resp = s.call(t, http.MethodGet, "/api/inventory/movements?direction=out", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Items, 1)

	resp = s.call(t, http.MethodGet, "/api/inventory/movements?direction=sideways", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var report dto.InventoryReportDTO
	resp = s.call(t, http.MethodGet, "/api/reports/inventory", token, nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2400", report.TotalValue.String())
	require.Len(t, report.LowStock, 1, "3 <= 5")

	resp = s.call(t, http.MethodGet, "/api/reports/abc.csv", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	csvBody, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(string(csvBody)), "\n")+1)

	var summary dto.DashboardSummaryDTO
	resp = s.call(t, http.MethodGet, "/api/dashboard/summary", token, nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, 1, summary.TodayOutgoing)

	// con movimientos no se puede borrar
	resp = s.call(t, http.MethodDelete, "/api/products/"+p.ID, token, nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAislamientoEntreTenants(t *testing.T) {
	s := newTestServer(t)
	ana := s.signup(t, "ana@example.com", "")
	bia := s.signup(t, "bia@example.com", "")

	var p dto.ProductResponse
	resp := s.call(t, http.MethodPost, "/api/products", ana, map[string]any{
		"sku": "X-1", "name": "Caneta", "cost_price": "1", "sale_price": "2", "initial_stock": 5,
	}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID, bia, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/inventory/movements", bia, dto.RegisterMovementRequest{
		ProductID: p.ID, Direction: "out", Quantity: 1, Reason: "sale",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var listing dto.ProductListResponse
	s.call(t, http.MethodGet, "/api/products", bia, nil, &listing)
	assert.Empty(t, listing.Items)
}

func TestSampleData_SoloUnaVez(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "ana@example.com", "")

	var first, second dto.SetupResult
	resp := s.call(t, http.MethodPost, "/api/setup/sample-data", token, nil, &first)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, first.Seeded)
	assert.Equal(t, 4, first.Products)

	s.call(t, http.MethodPost, "/api/setup/sample-data", token, nil, &second)
	assert.False(t, second.Seeded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitaciones, capacidades y administración
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_InvitacionVencidaOInexistente(t *testing.T) {
	s := newTestServer(t)
	s.invitation(t, "OLDCODE1", domain.RoleClient, time.Now().Add(-time.Hour))

	resp := s.call(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Email: "ana@example.com", Password: "secreta123", FullName: "Ana", InvitationCode: "OLDCODE1",
	}, nil)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
	assert.Equal(t, "INVITATION_EXPIRED", errorCode(t, resp))

	resp = s.call(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Email: "ana@example.com", Password: "secreta123", FullName: "Ana", InvitationCode: "NOPE0000",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVITATION_INVALID", errorCode(t, resp))

	// ninguno de los intentos creó la cuenta
	resp = s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCapacidadDesactivada_Responde403(t *testing.T) {
	s := newTestServer(t)
	adminTok := s.adminToken(t)
	clientTok := s.signup(t, "ana@example.com", "")

	var me dto.UserResponse
	s.call(t, http.MethodGet, "/api/auth/me", clientTok, nil, &me)

	off := false
	var updated dto.ClientResponse
	resp := s.call(t, http.MethodPatch, "/api/admin/clients/"+me.ID+"/features", adminTok,
		dto.UpdateClientFeaturesRequest{Reports: &off}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, updated.Features.Reports)

	resp = s.call(t, http.MethodGet, "/api/reports/inventory", clientTok, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FEATURE_DISABLED", errorCode(t, resp))

	// el admin no depende de capacidades
	resp = s.call(t, http.MethodGet, "/api/reports/inventory", adminTok, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_RutasSoloParaAdmin(t *testing.T) {
	s := newTestServer(t)
	adminTok := s.adminToken(t)
	clientTok := s.signup(t, "ana@example.com", "")

	resp := s.call(t, http.MethodGet, "/api/admin/stats", clientTok, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var stats dto.AdminStatsDTO
	resp = s.call(t, http.MethodGet, "/api/admin/stats", adminTok, nil, &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stats.TotalClients)

	var inv dto.InvitationResponse
	resp = s.call(t, http.MethodPost, "/api/admin/invitations", adminTok, dto.CreateInvitationRequest{Role: "client"}, &inv)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, inv.Code, 8)
	assert.True(t, inv.IsValid)

	// el código generado sirve para registrarse
	s.signup(t, "bia@example.com", inv.Code)

	var clients []dto.ClientResponse
	s.call(t, http.MethodGet, "/api/admin/clients", adminTok, nil, &clients)
	assert.Len(t, clients, 2)

	resp = s.call(t, http.MethodDelete, "/api/admin/invitations/"+inv.ID, adminTok, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/products", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
