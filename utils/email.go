package utils

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends a single message to a list of recipients. The birthday
// engine depends on this interface so delivery can be faked in tests.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer delivers mail through the SMTP server configured in the
// environment.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailerFromEnv() *SMTPMailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	return &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("MAIL_FROM"),
	}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)

	return d.DialAndSend(msg)
}
