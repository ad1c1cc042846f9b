// Package email sends helpdesk notifications over SMTP.
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"fleetdesk/internal/domain/ticket"
	"fleetdesk/internal/shared/config"
)

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	Recipients  []string
	BaseURL     string // Base URL for links back to the UI (e.g. "http://localhost:3000")
}

// NewSMTPConfig adapts the email and server configuration.
func NewSMTPConfig(email config.EmailConfig, baseURL string) SMTPConfig {
	return SMTPConfig{
		Host:        email.SMTPHost,
		Port:        email.SMTPPort,
		Username:    email.SMTPUser,
		Password:    email.SMTPPassword,
		FromAddress: email.FromAddress,
		FromName:    email.FromName,
		Recipients:  email.TicketNotify,
		BaseURL:     strings.TrimRight(baseURL, "/"),
	}
}

type SMTPNotifier struct {
	config SMTPConfig
	dialer sender
}

func NewSMTPNotifier(config SMTPConfig) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPNotifier{
		config: config,
		dialer: dialer,
	}
}

// TicketCreated tells the helpdesk mailbox about a new ticket.
func (s *SMTPNotifier) TicketCreated(ctx context.Context, t *ticket.Ticket) error {
	if len(s.config.Recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/tickets/%d", s.config.BaseURL, t.ID)
	subject := fmt.Sprintf("[Ticket #%d] %s", t.ID, t.Title)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New ticket #%d</h2>
			<p><strong>%s</strong></p>
			<p>Priority: %s<br>Opened by: %s<br>Client: %s</p>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, t.ID, html.EscapeString(t.Title), html.EscapeString(t.Priority),
		html.EscapeString(t.CreatedBy), html.EscapeString(deref(t.ClientName)), link)

	plainBody := fmt.Sprintf(`
New ticket #%d

%s

Priority: %s
Opened by: %s
Client: %s

%s
	`, t.ID, t.Title, t.Priority, t.CreatedBy, deref(t.ClientName), link)

	return s.send(s.config.Recipients, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) send(to []string, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// NoopNotifier is used when no SMTP host is configured.
type NoopNotifier struct{}

func (NoopNotifier) TicketCreated(context.Context, *ticket.Ticket) error { return nil }
