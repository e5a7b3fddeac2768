package model

import "time"

// User is the owner of every record. Read-only for this service.
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Phone string `json:"phone,omitempty" db:"phone"`
}

// AccessToken is issued elsewhere and exchanged once per page load for a User.
type AccessToken struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	Used      bool      `db:"used"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Valid reports whether the token can still resolve its owner at now.
func (t *AccessToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// Session is the resolved identity handed to every page and aggregator call.
// User is nil while unresolved.
type Session struct {
	User    *User `json:"user"`
	Loading bool  `json:"loading"`
}

func (s *Session) Resolved() bool {
	return s != nil && s.User != nil
}

// UserID returns the session owner id, or 0 when unresolved.
func (s *Session) UserID() int64 {
	if !s.Resolved() {
		return 0
	}
	return s.User.ID
}

// GoogleCredentials are the OAuth tokens stored after a user links a calendar.
type GoogleCredentials struct {
	UserID       int64     `db:"user_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	TokenExpiry  time.Time `db:"token_expiry"`
	UpdatedAt    time.Time `db:"updated_at"`
}
