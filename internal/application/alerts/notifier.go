// Package alerts envía a cada cliente el resumen periódico de productos con stock bajo.
package alerts

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

const maxConcurrentTenants = 4

// Message correo a enviar.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer puerto de envío de correo.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// AlertSource calcula las alertas de un tenant (inventory.ReplenishmentUseCase).
type AlertSource interface {
	LowStockAlerts(ctx context.Context, tenant domain.Tenant) ([]dto.LowStockAlertDTO, error)
}

// Summary resultado de una corrida.
type Summary struct {
	Checked int // clientes con email_alerts activo
	Sent    int
	Failed  int
}

// Notifier recorre los clientes activos con la capacidad email_alerts.
type Notifier struct {
	userRepo     repository.UserRepository
	settingsRepo repository.ClientSettingsRepository
	source       AlertSource
	mailer       Mailer
	format       *i18n.Formatter
	log          zerolog.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(
	userRepo repository.UserRepository,
	settingsRepo repository.ClientSettingsRepository,
	source AlertSource,
	mailer Mailer,
	format *i18n.Formatter,
	log zerolog.Logger,
) *Notifier {
	return &Notifier{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		source:       source,
		mailer:       mailer,
		format:       format,
		log:          log,
	}
}

// NotifyAll envía un correo por cliente con alertas. El fallo de un cliente no detiene a los demás;
// solo se devuelve error si no se pudo listar los usuarios.
func (n *Notifier) NotifyAll(ctx context.Context) (Summary, error) {
	users, err := n.userRepo.ListByRole(ctx, domain.RoleClient)
	if err != nil {
		return Summary{}, domain.WrapPersistence(err)
	}

	var checked, sent, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTenants)
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		u := u
		g.Go(func() error {
			ok, err := n.wantsAlerts(gctx, u.ID)
			if err != nil {
				failed.Add(1)
				n.log.Error().Err(err).Str("tenant_id", u.ID).Msg("alerts: leer configuración")
				return nil
			}
			if !ok {
				return nil
			}
			checked.Add(1)
			delivered, err := n.notify(gctx, u)
			if err != nil {
				failed.Add(1)
				n.log.Error().Err(err).Str("tenant_id", u.ID).Msg("alerts: fallo al notificar")
				return nil
			}
			if delivered {
				sent.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	s := Summary{Checked: int(checked.Load()), Sent: int(sent.Load()), Failed: int(failed.Load())}
	n.log.Info().Int("checked", s.Checked).Int("sent", s.Sent).Int("failed", s.Failed).Msg("alerts: corrida terminada")
	return s, nil
}

func (n *Notifier) wantsAlerts(ctx context.Context, userID string) (bool, error) {
	settings, err := n.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	features := entity.DefaultClientFeatures()
	if settings != nil {
		features = settings.Features
	}
	return features.Enabled(entity.FeatureEmailAlerts), nil
}

// notify devuelve false sin error si el cliente no tiene alertas.
func (n *Notifier) notify(ctx context.Context, u *entity.User) (bool, error) {
	items, err := n.source.LowStockAlerts(ctx, domain.NewTenant(u.ID, u.Role))
	if err != nil {
		return false, err
	}
	if len(items) == 0 {
		return false, nil
	}
	msg, err := n.buildMessage(u, items)
	if err != nil {
		return false, err
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

var subjects = map[string]string{
	"pt": "%d produto(s) com estoque baixo",
	"es": "%d producto(s) con stock bajo",
}

var htmlTmpl = template.Must(template.New("alerts").Parse(`<p>{{.Greeting}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>SKU</th><th>{{.ProductHeader}}</th><th>{{.StockHeader}}</th><th>{{.OrderHeader}}</th></tr>
{{range .Rows}}<tr><td>{{.SKU}}</td><td>{{.Name}}</td><td>{{.Stock}}</td><td>{{.Order}}</td></tr>
{{end}}</table>`))

type htmlRow struct{ SKU, Name, Stock, Order string }

func (n *Notifier) buildMessage(u *entity.User, items []dto.LowStockAlertDTO) (Message, error) {
	lang := n.format.Lang()
	subject, ok := subjects[lang]
	if !ok {
		lang, subject = "pt", subjects["pt"]
	}
	greeting, product, stock, order := "Olá "+u.FullName+", estes produtos estão no mínimo ou abaixo:",
		"Produto", "Atual / Mínimo", "Pedido sugerido"
	if lang == "es" {
		greeting, product, stock, order = "Hola "+u.FullName+", estos productos están en o bajo su mínimo:",
			"Producto", "Actual / Mínimo", "Pedido sugerido"
	}

	var text strings.Builder
	text.WriteString(greeting + "\n\n")
	rows := make([]htmlRow, 0, len(items))
	for _, it := range items {
		r := htmlRow{
			SKU:   it.SKU,
			Name:  it.ProductName,
			Stock: n.format.Number(it.CurrentStock) + " / " + n.format.Number(it.MinimumStock),
			Order: n.format.Number(it.SuggestedOrderQty) + " (" + n.format.Money(it.EstimatedOrderCost) + ")",
		}
		rows = append(rows, r)
		fmt.Fprintf(&text, "- %s %s: %s, %s %s\n", r.SKU, r.Name, r.Stock, order, r.Order)
	}

	var html bytes.Buffer
	err := htmlTmpl.Execute(&html, map[string]any{
		"Greeting": greeting, "ProductHeader": product, "StockHeader": stock, "OrderHeader": order, "Rows": rows,
	})
	if err != nil {
		return Message{}, fmt.Errorf("alerts: plantilla: %w", err)
	}
	return Message{
		To:      u.Email,
		Subject: fmt.Sprintf(subject, len(items)),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
