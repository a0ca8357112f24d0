package models

import (
	"time"
)

type Activity struct {
	ID          string             `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Title       string             `gorm:"not null" json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Date        time.Time          `gorm:"index" json:"date"`
	City        string             `json:"city"`
	Venue       string             `json:"venue"`
	Attendees   []ActivityAttendee `json:"attendees" gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
}

// ActivityAttendee is the join row between users and the activities they
// attend. The host is the attendee row with IsHost set.
type ActivityAttendee struct {
	ActivityID string    `gorm:"primaryKey" json:"activity_id"`
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	User       User      `json:"user"`
	IsHost     bool      `json:"is_host"`
	DateJoined time.Time `json:"date_joined"`
}
