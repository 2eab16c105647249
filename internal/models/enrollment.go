package models

import "time"

// Enrollment links one user to one event. The (user_id, event_id) pair is unique.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_event"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_enrollments_user_event;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event     *Event    `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// RosterEntry is one line of an exported enrollment roster.
type RosterEntry struct {
	UserID     uint
	Username   string
	FirstName  string
	LastName   string
	Email      string
	EnrolledAt time.Time
}

type RosterExport struct {
	EventID   uint   `json:"event_id"`
	Key       string `json:"key"`
	URL       string `json:"url,omitempty"`
	Enrolled  int    `json:"enrolled"`
	Generated string `json:"generated_at"`
}
