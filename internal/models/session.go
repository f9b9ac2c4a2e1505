package models

import "time"

type Session struct {
	ID        string    `json:"id" db:"id" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
	UserID    int64     `json:"user_id" db:"user_id"`
	UserAgent string    `json:"user_agent" db:"user_agent" example:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) ..."`
	ClientIP  string    `json:"client_ip" db:"client_ip" example:"198.51.100.10"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
