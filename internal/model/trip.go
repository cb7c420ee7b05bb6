package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripStatus represents the planning stage of a trip.
type TripStatus string

const (
	TripStatusDraft    TripStatus = "draft"
	TripStatusPlanning TripStatus = "planning"
	TripStatusReady    TripStatus = "ready"
	TripStatusArchived TripStatus = "archived"
)

// Valid reports whether s is a known status.
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusDraft, TripStatusPlanning, TripStatusReady, TripStatusArchived:
		return true
	}
	return false
}

// Trip is a travel plan owned by a single user.
type Trip struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	UserID         uint             `json:"user_id" gorm:"not null;index"`
	Title          string           `json:"title" gorm:"size:255;not null"`
	Destination    string           `json:"destination" gorm:"size:255;not null"`
	StartDate      *time.Time       `json:"start_date" gorm:"type:date"`
	EndDate        *time.Time       `json:"end_date" gorm:"type:date"`
	TravelersCount uint             `json:"travelers_count" gorm:"not null;default:1"`
	Budget         *decimal.Decimal `json:"budget" gorm:"type:decimal(12,2)"`
	Status         TripStatus       `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	User     User          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Messages []TripMessage `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
