package mail_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Estoque-api/internal/application/alerts"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/mail"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSend_ArmaMensaje(t *testing.T) {
	d := &fakeDialer{}
	s := mail.NewSenderWithDialer(d, "alertas@estoque.local")

	err := s.Send(context.Background(), alerts.Message{
		To: "ana@example.com", Subject: "Estoque baixo", Text: "2 produtos", HTML: "<p>2 produtos</p>",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"alertas@estoque.local"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Estoque baixo"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSend_PropagaError(t *testing.T) {
	s := mail.NewSenderWithDialer(&fakeDialer{err: errors.New("535 auth failed")}, "x@y")
	err := s.Send(context.Background(), alerts.Message{To: "ana@example.com"})
	assert.ErrorContains(t, err, "ana@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, alerts.Message{To: "a@b"}), context.Canceled)
}
