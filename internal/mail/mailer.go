// Package mail is the seam to the external mail collaborator. Signup hands
// the plaintext confirmation code to a Mailer; everything after that is the
// mail system's problem.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

type Mailer interface {
	SendConfirmationCode(ctx context.Context, to, username, code string) error
}

// SMTPMailer delivers confirmation codes over plain SMTP.
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
	Host     string
}

func NewSMTPMailer(host string, port int, from, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		From:     from,
		Username: username,
		Password: password,
		Host:     host,
	}
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	body := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: Welcome to RateHub\r\n\r\nDear %s,\r\nYour confirmation_code: %s\r\n",
		to, m.From, username, code,
	)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if err := smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// LogMailer writes the code to the log instead of sending mail. Used in
// development and tests.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	m.Logger.Info("confirmation code issued",
		"to", to,
		"username", username,
		"confirmation_code", code,
	)
	return nil
}
