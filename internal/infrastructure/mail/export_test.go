package mail

import "gopkg.in/gomail.v2"

// NewSenderWithDialer permite inyectar un dialer falso.
func NewSenderWithDialer(d interface {
	DialAndSend(m ...*gomail.Message) error
}, from string) *SMTPSender {
	return &SMTPSender{dialer: d, from: from}
}
