package session

import (
	"context"
	"time"
)

// Role is the access level of a session
type Role string

const (
	// RoleResident is the initial role of every session
	RoleResident Role = "RESIDENT"
	// RoleAdmin is granted after presenting the shared passphrase
	RoleAdmin Role = "ADMIN"
)

// ResidentDisplayName is shown for sessions that are not elevated
const ResidentDisplayName = "Warga"

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleResident || r == RoleAdmin
}

// Session carries the active role of one caller. Store operations receive it explicitly.
type Session struct {
	ID          string    `json:"sessionId"`
	Role        Role      `json:"role"`
	ProfileName string    `json:"profileName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsAdmin returns true when the session has been elevated
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// DisplayName returns the name shown for the session owner
func (s *Session) DisplayName() string {
	if s.IsAdmin() {
		return s.ProfileName
	}
	return ResidentDisplayName
}

// Repository defines the interface for session storage
type Repository interface {
	CreateSession(ctx context.Context, sess *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	UpdateSession(ctx context.Context, sess *Session) error
}
