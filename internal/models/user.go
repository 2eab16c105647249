package models

import (
	"fmt"
	"time"
)

// Role is the access tier of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleNormal Role = "normal"
)

// ParseRole accepts only the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleNormal:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleNormal
}

// CanCreateEvents reports whether the role may create events.
func (r Role) CanCreateEvents() bool {
	return r == RoleAdmin || r == RoleNormal
}

// CanDeleteEvents reports whether the role may delete events.
func (r Role) CanDeleteEvents() bool {
	return r == RoleAdmin
}

// SeesInactiveEvents reports whether listings include inactive events.
func (r Role) SeesInactiveEvents() bool {
	return r == RoleAdmin
}

// CanExportRosters reports whether the role may export enrollment rosters.
func (r Role) CanExportRosters() bool {
	return r == RoleAdmin
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	FirstName string    `json:"first_name" gorm:"size:40;not null"`
	LastName  string    `json:"last_name" gorm:"size:40;not null"`
	Email     string    `json:"email" gorm:"size:254;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"size:7;not null;default:normal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity returns the request identity for u.
func (u *User) Identity() *Identity {
	return &Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
