package models

import "time"

// OAuthPasswordSentinel is stored as the password hash of accounts created
// through Google login. It is not a valid bcrypt hash, so a password login
// against such an account can never succeed.
const OAuthPasswordSentinel = "!oauth"

// User represents a registered author. Username doubles as the login handle
// and is email-shaped when email verification or Google login is in play.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not serialized
	IsVerified   bool      `json:"is_verified"`
	GoogleID     string    `json:"google_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
