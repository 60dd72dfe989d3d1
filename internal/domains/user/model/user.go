package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a console account. Only admins sign in; storefront
// visitors are anonymous.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the record stored per signed-in admin. The redis entry
// expires with the TTL; sign-out deletes it early.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session is still within its lifetime.
func (s *Session) Active() bool {
	return time.Now().Before(s.ExpiresAt)
}
