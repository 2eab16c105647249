package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/eventos-backend/internal/config"
	"github.com/sefazor/eventos-backend/internal/models"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(cfg.ResendAPIKey),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	html, err := render("welcome.html", map[string]interface{}{
		"FullName": user.FullName(),
		"Username": user.Username,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(user.Email, "Bienvenido a Eventos", html)
}

func (s *EmailService) SendEnrollmentEmail(user *models.User, event *models.Event, ticketURL string) error {
	html, err := render("enrollment.html", map[string]interface{}{
		"FullName":  user.FullName(),
		"EventName": event.Name,
		"Location":  event.Location,
		"StartDate": event.StartDate.Format(models.DateLayout),
		"EndDate":   event.EndDate.Format(models.DateLayout),
		"TicketURL": ticketURL,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(user.Email, "Inscripción confirmada: "+event.Name, html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("id", resp.Id))
	return nil
}

func render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
