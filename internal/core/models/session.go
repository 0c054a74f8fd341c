package models

import (
	"errors"
	"time"
)

// User is the identity carried by a session. Only its presence matters to
// the landing view; the fields are shown in the header and by whoami.
type User struct {
	ID    string // Subject from the identity provider
	Email string
}

// Session is the identity provider's record for an authenticated user.
// The application only ever holds a cached copy.
type Session struct {
	ID        string // Token ID (jti)
	User      *User
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Validate checks if the session carries a usable user
func (s *Session) Validate() error {
	if s.User == nil {
		return errors.New("session has no user")
	}
	if s.User.ID == "" {
		return errors.New("user id is required")
	}
	return nil
}

// Expired reports whether the session is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// UserOf returns the session's user, or nil for an absent session.
func UserOf(s *Session) *User {
	if s == nil {
		return nil
	}
	return s.User
}
