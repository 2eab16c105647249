package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sefazor/eventos-backend/internal/metrics"
	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/pkg/utils"
	"go.uber.org/zap"
)

type EventService struct {
	eventRepo      *repository.EventRepository
	enrollmentRepo *repository.EnrollmentRepository
	validator      *utils.Validator
	log            *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	validator *utils.Validator,
	log *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
		validator:      validator,
		log:            log.Named("event"),
	}
}

// List returns every event to admins and only active events to everyone else.
func (s *EventService) List(ctx context.Context, identity *models.Identity) ([]models.Event, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	return s.eventRepo.List(identity.Role.SeesInactiveEvents())
}

// Get returns the event detail as seen by identity. Inactive events are reachable by id.
func (s *EventService) Get(ctx context.Context, identity *models.Identity, eventID uint) (*models.EventResponse, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.CountByEvent(event.ID)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	isEnrolled, err := s.enrollmentRepo.IsEnrolled(identity.UserID, event.ID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	resp := models.NewEventResponse(event, enrolled, isEnrolled)
	return &resp, nil
}

// Create stores a new event owned by identity.
func (s *EventService) Create(ctx context.Context, identity *models.Identity, req models.EventRequest) (*models.Event, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	if !identity.Role.CanCreateEvents() {
		return nil, models.ErrPermissionDenied
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	// Layout already checked by the validator.
	start, _ := time.ParseInLocation(models.DateLayout, req.StartDate, time.UTC)
	end, _ := time.ParseInLocation(models.DateLayout, req.EndDate, time.UTC)
	if end.Before(start) {
		return nil, models.NewValidationError("end_date", "validation.end_before_start")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Location:    req.Location,
		Capacity:    *req.Capacity,
		Active:      active,
		CreatorID:   identity.UserID,
	}

	createdEvent, err := s.eventRepo.Create(event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	metrics.EventsCreatedTotal.Inc()
	s.log.Info("event created", zap.Uint("event_id", createdEvent.ID), zap.Uint("creator_id", identity.UserID))
	return createdEvent, nil
}

// Delete removes an event and its enrollments. Only admins may delete;
// anyone else gets ErrPermissionDenied and nothing changes.
func (s *EventService) Delete(ctx context.Context, identity *models.Identity, eventID uint) error {
	if !identity.Authenticated() {
		return models.ErrAuthenticationRequired
	}

	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return err
	}

	if !identity.Role.CanDeleteEvents() {
		s.log.Info("event delete refused", zap.Uint("event_id", eventID), zap.Uint("user_id", identity.UserID))
		return models.ErrPermissionDenied
	}

	if err := s.eventRepo.Delete(eventID); err != nil {
		return err
	}

	metrics.EventsDeletedTotal.Inc()
	s.log.Info("event deleted", zap.Uint("event_id", eventID), zap.Uint("user_id", identity.UserID))
	return nil
}

// ListEnrolled returns the events identity is enrolled in.
func (s *EventService) ListEnrolled(ctx context.Context, identity *models.Identity) ([]models.Event, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	return s.eventRepo.ListEnrolled(identity.UserID)
}
