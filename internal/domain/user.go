package domain

import "time"

// User is an account on the server. Every recipe, tag and ingredient
// belongs to exactly one user.
type User struct {
	ID string `json:"id"`
	Timestamps

	// Email is stored as entered; uniqueness is enforced case-insensitively.
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`

	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

// Session is a refresh-token session for a user. The refresh token itself
// is opaque to the server; only its hash is stored.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Timestamps

	RefreshTokenHash string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	IPAddress        string    `json:"ip_address,omitempty"`
	ClientName       string    `json:"client_name,omitempty"`
}

// IsExpired reports whether the session's refresh token can no longer be used.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
