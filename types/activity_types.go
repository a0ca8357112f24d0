package types

import (
	"time"
)

// Wire shapes for the /api surface. The client package consumes these
// verbatim.

type Profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Image       string `json:"image,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
	Host        *Profile  `json:"host,omitempty"`
	IsHost      bool      `json:"isHost"`
	IsGoing     bool      `json:"isGoing"`
	Attendees   []Profile `json:"attendees,omitempty"`
}

type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token,omitempty"`
	Image       string `json:"image,omitempty"`
}

// UserFormValues is the login/register request body.
type UserFormValues struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
	Username    string `json:"username,omitempty"`
}

type Comment struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Body        string    `json:"body"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Image       string    `json:"image,omitempty"`
}
