package models

import (
	"time"
)

// User represents a bidder account
type User struct {
	ID         int64     `db:"id"`
	Username   string    `db:"username"`
	DiscordID  *int64    `db:"discord_id"` // Linked messaging identity, nil until linked
	IsVerified bool      `db:"is_verified"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// HasLinkedIdentity reports whether winners can be messaged directly
func (u *User) HasLinkedIdentity() bool {
	return u.DiscordID != nil
}

// Session maps an opaque token issued by the identity provider to a user
type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// IsExpired reports whether the session is no longer valid at the given time
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
