package model

import "time"

// EmailVerificationCode is a one-time code mailed to a user during signup.
type EmailVerificationCode struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Code      string    `gorm:"size:6;not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// IsExpired reports whether the code is older than ttl at now.
func (c *EmailVerificationCode) IsExpired(now time.Time, ttl time.Duration) bool {
	return !now.Before(c.CreatedAt.Add(ttl))
}
