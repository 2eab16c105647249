package service

import (
	"github.com/sefazor/eventos-backend/internal/models"
	"go.uber.org/zap"
)

// Mailer sends notification emails. email.EmailService implements it.
type Mailer interface {
	SendWelcomeEmail(user *models.User) error
	SendEnrollmentEmail(user *models.User, event *models.Event, ticketURL string) error
}

// NoopMailer is used when email delivery is not configured.
type NoopMailer struct{}

func (NoopMailer) SendWelcomeEmail(*models.User) error { return nil }

func (NoopMailer) SendEnrollmentEmail(*models.User, *models.Event, string) error { return nil }

// sendAsync runs send in the background. Delivery failures are logged and never reach the caller.
func sendAsync(log *zap.Logger, kind string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Warn("notification not delivered", zap.String("kind", kind), zap.Error(err))
		}
	}()
}
