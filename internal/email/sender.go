package email

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/config"
)

// EmailSender provides a testable abstraction over SES delivery.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes outgoing mail to the log instead of delivering it.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	log.Ctx(ctx).Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("Email delivery disabled, logging message")
	return nil
}

// NewSender returns an SES client when email is enabled and a LogSender otherwise.
func NewSender(cfg config.EmailConfig) (EmailSender, error) {
	if !cfg.Enabled {
		return LogSender{}, nil
	}
	client, err := NewSESClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
