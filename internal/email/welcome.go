package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codr1/leagueapi/internal/metrics"
)

const welcomeEmailTimeout = 10 * time.Second

type WelcomeEmail struct {
	Subject string
	Body    string
}

// newEmailContext keeps parent's values but not its cancellation.
func newEmailContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(context.WithoutCancel(parent), timeout)
}

// BuildWelcomeEmail renders the signup greeting.
func BuildWelcomeEmail(appName, username, baseURL string) WelcomeEmail {
	if appName == "" {
		appName = "League API"
	}
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", username)
	fmt.Fprintf(&body, "Your %s account is ready. ", appName)
	body.WriteString("Use the token returned at signup in the Authorization header as \"Token <key>\".\n")
	if baseURL != "" {
		fmt.Fprintf(&body, "\nAPI index: %s/api/v1/index\n", strings.TrimRight(baseURL, "/"))
	}
	return WelcomeEmail{
		Subject: fmt.Sprintf("Welcome to %s", appName),
		Body:    body.String(),
	}
}

// SendWelcomeEmail sends msg in the background. The send outlives the
// request that triggered it but is bounded by welcomeEmailTimeout.
func SendWelcomeEmail(ctx context.Context, sender EmailSender, recipient string, msg WelcomeEmail, logger *zerolog.Logger) {
	if sender == nil {
		return
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || msg.Subject == "" {
		return
	}

	sendCtx, cancel := newEmailContext(ctx, welcomeEmailTimeout)
	go func() {
		defer cancel()
		err := sender.Send(sendCtx, recipient, msg.Subject, msg.Body)
		metrics.RecordEmail(err)
		if err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send welcome email")
		}
	}()
}
