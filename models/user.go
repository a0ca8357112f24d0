package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"deleted_at"`
	Username    string             `gorm:"unique;not null" json:"username"`
	DisplayName string             `json:"display_name"`
	Email       string             `gorm:"unique;not null" json:"email"`
	Password    string             `gorm:"not null" json:"-"` // Don't expose password in JSON
	Bio         string             `json:"bio"`
	Avatar      string             `json:"avatar"`
	Attendances []ActivityAttendee `json:"attendances" gorm:"foreignKey:UserID"`
	Comments    []Comment          `json:"comments" gorm:"foreignKey:UserID"`
}
