package alerts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/alerts"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeMailer struct {
	mu     sync.Mutex
	sent   []alerts.Message
	failTo string
}

func (m *fakeMailer) Send(_ context.Context, msg alerts.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.To == m.failTo {
		return errors.New("smtp: buzón lleno")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	users    *memory.UserRepo
	settings *memory.ClientSettingsRepo
	products *memory.ProductRepo
	mailer   *fakeMailer
	notifier *alerts.Notifier
}

func newFixture(t *testing.T, locale string) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{
		users:    memory.NewUserRepository(s),
		settings: memory.NewClientSettingsRepository(s),
		products: memory.NewProductRepository(s),
		mailer:   &fakeMailer{},
	}
	f.notifier = alerts.NewNotifier(f.users, f.settings, inventory.NewReplenishmentUseCase(f.products),
		f.mailer, i18n.New(locale), zerolog.Nop())
	return f
}

// client crea un cliente; emailAlerts nil = sin configuración guardada.
func (f *fixture) client(t *testing.T, id string, active bool, emailAlerts *bool) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, f.users.Create(ctx, &entity.User{
		ID: id, Email: id + "@example.com", FullName: "Cliente " + id,
		Role: domain.RoleClient, IsActive: active, CreatedAt: now, UpdatedAt: now,
	}))
	if emailAlerts == nil {
		return
	}
	features := entity.DefaultClientFeatures()
	features.EmailAlerts = *emailAlerts
	require.NoError(t, f.settings.Create(ctx, &entity.ClientSettings{
		UserID: id, SubscriptionPlan: entity.PlanPro, Features: features, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) product(t *testing.T, tenantID, id string, stock, min int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, TenantID: tenantID, SKU: "SKU-" + id, Name: "Produto " + id,
		CostPrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15),
		CurrentStock: stock, MinimumStock: min, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func ptr(b bool) *bool { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// NotifyAll
// ──────────────────────────────────────────────────────────────────────────────

func TestNotifyAll_SoloClientesConAlertasYStockBajo(t *testing.T) {
	f := newFixture(t, "pt-BR")
	f.client(t, "ana", true, ptr(true))
	f.product(t, "ana", "a1", 2, 10)
	f.product(t, "ana", "a2", 50, 10)

	f.client(t, "bia", true, ptr(false)) // capacidad apagada
	f.product(t, "bia", "b1", 0, 5)

	f.client(t, "caio", false, ptr(true)) // inactivo
	f.product(t, "caio", "c1", 0, 5)

	f.client(t, "dani", true, ptr(true)) // sin alertas
	f.product(t, "dani", "d1", 50, 5)

	f.client(t, "edu", true, nil) // sin configuración: defaults sin email_alerts

	s, err := f.notifier.NotifyAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, alerts.Summary{Checked: 2, Sent: 1, Failed: 0}, s)
	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "1 produto(s) com estoque baixo", msg.Subject)
	assert.Contains(t, msg.Text, "SKU-a1")
	assert.NotContains(t, msg.Text, "SKU-a2")
	assert.Contains(t, msg.HTML, "<td>SKU-a1</td>")
}

func TestNotifyAll_FalloDeUnClienteNoDetieneLaCorrida(t *testing.T) {
	f := newFixture(t, "es-CO")
	f.client(t, "ana", true, ptr(true))
	f.product(t, "ana", "a1", 0, 3)
	f.client(t, "bia", true, ptr(true))
	f.product(t, "bia", "b1", 1, 3)
	f.mailer.failTo = "ana@example.com"

	s, err := f.notifier.NotifyAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Checked)
	assert.Equal(t, 1, s.Sent)
	assert.Equal(t, 1, s.Failed)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "bia@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "1 producto(s) con stock bajo", f.mailer.sent[0].Subject)
}

func TestNotifyAll_EscapaHTML(t *testing.T) {
	f := newFixture(t, "pt-BR")
	f.client(t, "ana", true, ptr(true))
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: "x", TenantID: "ana", SKU: "X-1", Name: "<b>Café</b>",
		CostPrice: decimal.NewFromInt(1), SalePrice: decimal.NewFromInt(2),
		CurrentStock: 0, MinimumStock: 1, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	_, err := f.notifier.NotifyAll(context.Background())
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	assert.NotContains(t, f.mailer.sent[0].HTML, "<b>Café</b>")
	assert.Contains(t, f.mailer.sent[0].HTML, "&lt;b&gt;")
}
