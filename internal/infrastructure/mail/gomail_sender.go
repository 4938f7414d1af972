// Package mail envía correos por SMTP con gomail.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Estoque-api/internal/application/alerts"
)

var _ alerts.Mailer = (*SMTPSender)(nil)

// dialer permite sustituir el envío real en tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implementa alerts.Mailer.
type SMTPSender struct {
	dialer dialer
	from   string
}

// NewSMTPSender construye el sender con las credenciales SMTP.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

// Send envía un correo en texto plano con alternativa HTML.
func (s *SMTPSender) Send(ctx context.Context, msg alerts.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", msg.To, err)
	}
	return nil
}
