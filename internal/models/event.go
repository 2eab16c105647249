package models

import (
	"time"
)

// DateLayout is the wire format of event dates.
const DateLayout = "2006-01-02"

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:150;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	StartDate   time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate     time.Time `json:"end_date" gorm:"type:date;not null"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	Capacity    int       `json:"capacity" gorm:"not null;check:capacity >= 0"`
	// Active has no gorm default: a false value must be written as-is on create.
	Active    bool      `json:"active" gorm:"not null"`
	CreatorID uint      `json:"creator_id" gorm:"not null;index"`
	Creator   *User     `json:"-" gorm:"foreignKey:CreatorID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location    string `json:"location" validate:"required,max=255"`
	Capacity    *int   `json:"capacity" validate:"required,gte=0"`
	Active      *bool  `json:"active"`
}

type EventResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Location      string    `json:"location"`
	Capacity      int       `json:"capacity"`
	Active        bool      `json:"active"`
	CreatorID     uint      `json:"creator_id"`
	EnrolledCount int64     `json:"enrolled_count"`
	SpotsLeft     int64     `json:"spots_left"`
	IsEnrolled    bool      `json:"is_enrolled"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEventResponse builds the detail view of e for a requester.
func NewEventResponse(e *Event, enrolled int64, isEnrolled bool) EventResponse {
	left := int64(e.Capacity) - enrolled
	if left < 0 {
		left = 0
	}
	return EventResponse{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		StartDate:     e.StartDate.Format(DateLayout),
		EndDate:       e.EndDate.Format(DateLayout),
		Location:      e.Location,
		Capacity:      e.Capacity,
		Active:        e.Active,
		CreatorID:     e.CreatorID,
		EnrolledCount: enrolled,
		SpotsLeft:     left,
		IsEnrolled:    isEnrolled,
		CreatedAt:     e.CreatedAt,
	}
}
