package models

import "time"

// AuthRequest for login.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session holds the authenticated user's identity and bearer credential.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if the session token has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
