package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers notification emails. Delivery is best-effort
// everywhere it is used; callers log failures and move on.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
}

// NewSMTPSenderFromEnv builds an SMTPSender from SMTP_HOST/SMTP_PORT/
// SMTP_USER/SMTP_PASS. Returns nil when SMTP_HOST is unset so callers can
// fall back to the noop sender.
func NewSMTPSenderFromEnv() *SMTPSender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Printf("Invalid SMTP_PORT value, defaulting to 587: %v", err)
		port = 587
	}
	return &SMTPSender{
		host: host,
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}

// NoopSender drops mail on the floor. Used when SMTP is not configured and
// in tests.
type NoopSender struct{}

func (NoopSender) Send(to, subject, body string) error {
	log.Printf("Email disabled, dropping message to %s: %s", to, subject)
	return nil
}
