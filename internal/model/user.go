package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string    `json:"-" gorm:"size:255"` // empty for Google-only accounts
	IsEmailVerified bool      `json:"is_email_verified" gorm:"not null;default:false"`
	GoogleID        *string   `json:"-" gorm:"uniqueIndex;size:255"`
	IsStaff         bool      `json:"is_staff" gorm:"not null;default:false"`
	IsActive        bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasPassword reports whether the user can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
