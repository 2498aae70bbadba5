package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one conversation between a user and a bot.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	BotID     uuid.UUID  `json:"bot_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewSession creates a session with a fresh identifier and no expiry.
func NewSession(userID, botID uuid.UUID, title string) Session {
	now := time.Now().UTC()
	return Session{
		ID:        uuid.New(),
		UserID:    userID,
		BotID:     botID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithExpiry returns a copy of the session expiring at the given time.
func (s Session) WithExpiry(expiresAt time.Time) Session {
	s.ExpiresAt = &expiresAt
	return s
}

// Expired reports whether the session has passed its expiry time.
func (s Session) Expired() bool {
	return s.ExpiresAt != nil && time.Now().After(*s.ExpiresAt)
}

// Active reports whether the session is still usable.
func (s Session) Active() bool {
	return !s.Expired()
}

// RemainingTime returns the time until expiry, or zero and false for a
// session without expiry.
func (s Session) RemainingTime() (time.Duration, bool) {
	if s.ExpiresAt == nil {
		return 0, false
	}
	return time.Until(*s.ExpiresAt), true
}
