package repository

import (
	"github.com/sefazor/eventos-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	result := r.db.Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}

// List returns events ordered by id. Inactive events are left out unless includeInactive is set.
func (r *EventRepository) List(includeInactive bool) ([]models.Event, error) {
	var events []models.Event
	q := r.db.Order("id ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&events).Error
	return events, err
}

// ListEnrolled returns the events userID is enrolled in, oldest enrollment first.
func (r *EventRepository) ListEnrolled(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.
		Joins("JOIN enrollments ON enrollments.event_id = events.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.id ASC").
		Find(&events).Error
	return events, err
}

// Delete removes the event together with its enrollments.
func (r *EventRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
