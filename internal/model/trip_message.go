package model

import "time"

// MessageRole tags who authored a trip message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// TripMessage is one turn of a trip's conversation. Rows are append-only.
type TripMessage struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	TripID    uint        `json:"-" gorm:"not null;index"`
	Role      MessageRole `json:"role" gorm:"type:varchar(20);not null"`
	Content   string      `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
}
