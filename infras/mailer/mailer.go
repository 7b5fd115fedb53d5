package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"innkeep/config"
	"innkeep/infras/otel"
)

const (
	otelScopeName = "mailer"
)

// Mailer sends transactional email. Delivery is best effort, callers must not
// fail their own operation when a send fails.
type Mailer interface {
	Send(ctx context.Context, toName, toEmail, subject, plainText, htmlContent string) error
}

type sendgridMailer struct {
	client *sendgrid.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(cfg.External.Mailer.APIKey),
		config: cfg,
		otel:   ot,
	}
}

// Send implements Mailer.
func (m *sendgridMailer) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlContent string) (err error) {
	_, scope := m.otel.NewScope(ctx, otelScopeName, otelScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !m.config.External.Mailer.Enable {
		log.Debug().Str("to", toEmail).Str("subject", subject).Msg("Mailer disabled, skipping send")

		return nil
	}

	from := mail.NewEmail(m.config.External.Mailer.SenderName, m.config.External.Mailer.SenderEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := m.client.Send(message)
	if err != nil {
		log.Error().Err(err).Str("to", toEmail).Str("subject", subject).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Error().Int("status", response.StatusCode).Str("to", toEmail).Str("subject", subject).Msg("email rejected by provider")

		return fmt.Errorf("email rejected by provider with status %d", response.StatusCode)
	}

	log.Info().Str("to", toEmail).Str("subject", subject).Msg("email sent")

	return nil
}
