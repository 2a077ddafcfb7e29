package mail

import (
	"fmt"
	"net/smtp"
)

// Sender delivers a plain-text email. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers mail through a single SMTP account.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(host, port, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		s.from, to, subject, body)

	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}

// NopSender discards all mail. Used when SMTP is not configured.
type NopSender struct{}

func (NopSender) Send(to, subject, body string) error {
	return nil
}
