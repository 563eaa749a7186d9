package notifier

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends a single email. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SendGridMailer delivers mail through the SendGrid API. Delivery is gated by
// EMAIL_NOTIF so local environments stay quiet by default.
type SendGridMailer struct {
	apiKey  string
	from    string
	enabled bool
}

// NewSendGridMailer builds a mailer from environment configuration.
func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{
		apiKey:  os.Getenv("SENDGRID_API_KEY"),
		from:    os.Getenv("EMAIL_FROM"),
		enabled: os.Getenv("EMAIL_NOTIF") == "true",
	}
}

func (m *SendGridMailer) Send(to, subject, htmlBody string) error {
	if !m.enabled {
		log.Debug().Str("to", to).Str("subject", subject).Msg("Email notifications disabled, skipping send")
		return nil
	}
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("no recipients defined")
	}

	fromEmail := mail.NewEmail("Inventory Management System", m.from)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(fromEmail, subject, toEmail, "", htmlBody)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	log.Info().Int("status", response.StatusCode).Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
