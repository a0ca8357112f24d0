package models

import (
	"time"
)

type Comment struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Body       string    `gorm:"not null" json:"body"`
	ActivityID string    `gorm:"index;not null" json:"activity_id"`
	Activity   Activity  `json:"-"`
	UserID     uint      `json:"user_id"`
	User       User      `json:"user"`
	CreatedAt  time.Time `json:"created_at"`
}
