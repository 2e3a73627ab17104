package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers transactional mail. Services depend on this interface so
// tests can observe sends without touching the network.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendgridMailer sends through the Sendgrid v3 API.
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgrid builds a mailer from configuration.
func NewSendgrid(cfg config.SendgridConfig) (*SendgridMailer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if cfg.DefaultFrom == "" {
		return nil, errors.New("sendgrid from email is required")
	}
	return &SendgridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.DefaultFrom),
	}, nil
}

// Send delivers a single HTML message to the recipient.
func (m *SendgridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if to == "" {
		return errors.New("recipient is required")
	}

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), "", htmlBody)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send returned status %d", resp.StatusCode)
	}
	return nil
}
