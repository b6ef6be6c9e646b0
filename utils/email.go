package utils

import (
	"fmt"
	"net/smtp"
)

// Mailer sends HTML email over SMTP. Credentials come from configuration at
// startup instead of being read from the environment on every send.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func NewMailer(host, port, from, password string) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		From:     from,
		Password: password,
	}
}

// Send delivers a single message to the given address with subject and HTML body.
func (m *Mailer) Send(to, subject, body string) error {
	if m.Password == "" {
		return fmt.Errorf("EMAIL_PASSWORD is not set")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)

	err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
