package service

import (
	"context"
	"errors"

	"github.com/sefazor/eventos-backend/internal/metrics"
	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/pkg/qrcode"
	"go.uber.org/zap"
)

type EnrollmentService struct {
	eventRepo      *repository.EventRepository
	enrollmentRepo *repository.EnrollmentRepository
	userRepo       *repository.UserRepository
	mailer         Mailer
	qr             *qrcode.QRService
	log            *zap.Logger
}

func NewEnrollmentService(
	eventRepo *repository.EventRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	mailer Mailer,
	qr *qrcode.QRService,
	log *zap.Logger,
) *EnrollmentService {
	if mailer == nil {
		mailer = NoopMailer{}
	}
	return &EnrollmentService{
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		mailer:         mailer,
		qr:             qr,
		log:            log.Named("enrollment"),
	}
}

// Enroll signs identity up for eventID and returns the event.
// Anonymous callers are rejected before the event or its capacity is looked at.
func (s *EnrollmentService) Enroll(ctx context.Context, identity *models.Identity, eventID uint) (*models.Event, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}

	_, err := s.enrollmentRepo.Enroll(identity.UserID, eventID)
	metrics.EnrollmentsTotal.WithLabelValues(enrollOutcome(err)).Inc()
	if err != nil {
		if errors.Is(err, models.ErrEventFull) || errors.Is(err, models.ErrAlreadyEnrolled) {
			s.log.Info("enrollment refused", zap.Uint("event_id", eventID), zap.Uint("user_id", identity.UserID), zap.Error(err))
		}
		return nil, err
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user enrolled", zap.Uint("event_id", eventID), zap.Uint("user_id", identity.UserID))

	if user, err := s.userRepo.GetByID(identity.UserID); err == nil {
		ticketURL := s.qr.TicketURL(event.ID, user.ID)
		sendAsync(s.log, "enrollment", func() error { return s.mailer.SendEnrollmentEmail(user, event, ticketURL) })
	}

	return event, nil
}

// Ticket renders the QR ticket of identity for eventID.
func (s *EnrollmentService) Ticket(ctx context.Context, identity *models.Identity, eventID uint) ([]byte, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	if _, err := s.enrollmentRepo.Get(identity.UserID, eventID); err != nil {
		return nil, err
	}
	return s.qr.GenerateTicket(eventID, identity.UserID, qrcode.DefaultSize)
}

func enrollOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeEnrolled
	case errors.Is(err, models.ErrEventFull):
		return metrics.OutcomeFull
	case errors.Is(err, models.ErrAlreadyEnrolled):
		return metrics.OutcomeAlreadyEnrolled
	case errors.Is(err, models.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
