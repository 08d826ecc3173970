package dispatch

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"contract-service/internal/models"
)

// MailTransport is the outbound mail capability. pkg/email provides the
// SMTP implementation.
type MailTransport interface {
	Send(to, subject, htmlBody string) error
}

// UserEmailStore resolves a user's address.
type UserEmailStore interface {
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}

// Email renders a per-kind template and hands the message to the mail
// transport. Sends are rate limited so a large scan cannot flood the SMTP
// relay.
type Email struct {
	transport MailTransport
	users     UserEmailStore
	limiter   *rate.Limiter
}

func NewEmail(transport MailTransport, users UserEmailStore, ratePerSecond int) *Email {
	return &Email{
		transport: transport,
		users:     users,
		limiter:   rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
	}
}

func (e *Email) Dispatch(ctx context.Context, n models.Notification) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("email rate limit wait failed: %w", err)
	}

	to, err := e.users.GetUserEmail(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve address for user %d: %w", n.UserID, err)
	}

	subject, body, err := RenderEmail(n)
	if err != nil {
		return fmt.Errorf("failed to render email for notification %s: %w", n.ID, err)
	}

	if err := e.transport.Send(to, subject, body); err != nil {
		return fmt.Errorf("failed to send email for notification %s: %w", n.ID, err)
	}
	return nil
}
