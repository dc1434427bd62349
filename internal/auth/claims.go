package auth

import "time"

// AccessClaims are the claims carried by a PASETO access token. v4.local
// tokens are encrypted, so claims are not readable without the server key.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	// Standard PASETO claims.
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// ClientInfo is what a client reports about itself at login. It is stored
// on the session for display in session listings.
type ClientInfo struct {
	Name     string `json:"name,omitempty"`     // Plateful Mobile, Plateful Web
	Version  string `json:"version,omitempty"`  // 1.4.0
	Platform string `json:"platform,omitempty"` // iOS, Android, Web, ...
}

// Display returns a human-readable label for the client.
func (c ClientInfo) Display() string {
	if c.Name == "" {
		return c.Platform
	}
	if c.Platform == "" {
		return c.Name
	}
	return c.Name + " (" + c.Platform + ")"
}
