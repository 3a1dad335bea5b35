package models

import "time"

// Parent represents the authenticated account holder who owns child profiles
type Parent struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Username      string    `json:"username"`
	OriginURL     string    `json:"-"`
	OAuthProvider string    `json:"-"`
	OAuthSubject  string    `json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// Session is a server-side record binding a refresh-token rotation chain to a
// user. One session backs exactly one refresh: rotation deletes it and creates
// a replacement.
type Session struct {
	ID        string    `json:"sid"`
	UserID    int64     `json:"uid"`
	ExpiresAt time.Time `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
