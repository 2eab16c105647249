package models

import "time"

// Identity is the authenticated caller of an operation.
// A nil *Identity means the caller is anonymous.
type Identity struct {
	UserID   uint
	Username string
	Role     Role
	// TokenID is the jti of the session token the request was authenticated with.
	TokenID   string
	ExpiresAt time.Time
}

func (i *Identity) Authenticated() bool {
	return i != nil && i.UserID != 0
}

func (i *Identity) IsAdmin() bool {
	return i.Authenticated() && i.Role == RoleAdmin
}
