package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// StartTLS upgrades a plain connection; otherwise the connection is
	// opened with implicit TLS (port 465 style).
	StartTLS bool
	// From is the sender address; falls back to Username.
	From string
}

// Mailer sends plain-text notification emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer implements Mailer over a plain SMTP server (Gmail by default).
type SMTPMailer struct {
	config Config
	logger *zap.Logger
}

func NewSMTPMailer(config Config, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// Send delivers a plain-text UTF-8 email. An empty recipient is a no-op:
// no recipient configured means notifications are simply off.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return nil
	}
	if !isValidEmail(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}

	from := m.from()
	message := buildMessage(from, to, subject, body)

	if err := m.sendSMTP(ctx, from, to, message); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	if m.logger != nil {
		m.logger.Info("notification email sent", zap.String("to", to), zap.String("subject", subject))
	}
	return nil
}

func (m *SMTPMailer) from() string {
	if m.config.From != "" {
		return m.config.From
	}
	if m.config.Username != "" {
		return m.config.Username
	}
	return "noreply@chatia.app"
}

func buildMessage(from, to, subject, body string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", to))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	return builder.String()
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}

func (m *SMTPMailer) sendSMTP(ctx context.Context, from, to, message string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	done := make(chan error, 1)
	go func() {
		if m.config.StartTLS {
			done <- smtp.SendMail(addr, auth, from, []string{to}, []byte(message))
			return
		}
		done <- m.sendImplicitTLS(addr, auth, from, to, message)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sendImplicitTLS speaks SMTP over a connection that is TLS from the first
// byte, the mode Gmail exposes on port 465.
func (m *SMTPMailer) sendImplicitTLS(addr string, auth smtp.Auth, from, to, message string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.config.Host})
	if err != nil {
		return fmt.Errorf("tls dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(message)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}
