package repository

import (
	"errors"

	"github.com/sefazor/eventos-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll adds userID to eventID. The event row is locked for the duration of the
// check-count-insert sequence so concurrent enrollments cannot overshoot capacity.
// Inactive events accept enrollments.
func (r *EnrollmentRepository) Enroll(userID, eventID uint) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
			return notFound(err)
		}

		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return models.ErrAlreadyEnrolled
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).Where("event_id = ?", eventID).Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled >= int64(event.Capacity) {
			return models.ErrEventFull
		}

		enrollment = &models.Enrollment{UserID: userID, EventID: eventID}
		if err := tx.Create(enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (r *EnrollmentRepository) CountByEvent(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) IsEnrolled(userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) Get(userID, eventID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Roster lists the enrolled users of eventID in enrollment order.
func (r *EnrollmentRepository) Roster(eventID uint) ([]models.RosterEntry, error) {
	var entries []models.RosterEntry
	err := r.db.Table("enrollments").
		Select("users.id AS user_id, users.username, users.first_name, users.last_name, users.email, enrollments.created_at AS enrolled_at").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("enrollments.event_id = ?", eventID).
		Order("enrollments.id ASC").
		Scan(&entries).Error
	return entries, err
}
