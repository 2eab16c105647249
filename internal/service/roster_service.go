package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/pkg/storage"
	"github.com/sefazor/eventos-backend/pkg/utils"
	"go.uber.org/zap"
)

var rosterHeader = []string{"user_id", "username", "first_name", "last_name", "email", "enrolled_at"}

type RosterService struct {
	eventRepo      *repository.EventRepository
	enrollmentRepo *repository.EnrollmentRepository
	store          storage.ObjectStore
	log            *zap.Logger
	now            func() time.Time
}

// NewRosterService builds the roster exporter. A nil store disables exports.
func NewRosterService(
	eventRepo *repository.EventRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	store storage.ObjectStore,
	log *zap.Logger,
) *RosterService {
	return &RosterService{
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
		store:          store,
		log:            log.Named("roster"),
		now:            time.Now,
	}
}

// Export uploads the enrollment roster of eventID as CSV. Admin only.
func (s *RosterService) Export(ctx context.Context, identity *models.Identity, eventID uint) (*models.RosterExport, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	if !identity.Role.CanExportRosters() {
		return nil, models.ErrPermissionDenied
	}
	if s.store == nil {
		return nil, models.ErrStorageDisabled
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	entries, err := s.enrollmentRepo.Roster(event.ID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	body, err := encodeRoster(entries)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("rosters/event-%d/%s-%s.csv", event.ID, now.Format("20060102-150405"), utils.GenerateRandomString(6))
	if err := s.store.Put(ctx, key, "text/csv; charset=utf-8", body); err != nil {
		return nil, err
	}

	s.log.Info("roster exported", zap.Uint("event_id", event.ID), zap.String("key", key), zap.Int("enrolled", len(entries)))
	return &models.RosterExport{
		EventID:   event.ID,
		Key:       key,
		URL:       s.store.PublicURL(key),
		Enrolled:  len(entries),
		Generated: now.Format(time.RFC3339),
	}, nil
}

func encodeRoster(entries []models.RosterEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rosterHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write([]string{
			strconv.FormatUint(uint64(e.UserID), 10),
			e.Username,
			e.FirstName,
			e.LastName,
			e.Email,
			e.EnrolledAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	return buf.Bytes(), nil
}
