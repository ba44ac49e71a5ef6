package entity

import "time"

// Session is the server-side record behind a session cookie. ID is the hex
// SHA-256 of the random token carried by the cookie, never the token itself.
type Session struct {
	ID        string    `gorm:"size:64;primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
