package controllers

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reactivities/reactivities-go/models"
)

func TestToActivityComputesViewerFlags(t *testing.T) {
	date := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	activity := models.Activity{
		ID:       "a-1",
		Title:    "Pub night",
		Category: "drinks",
		Date:     date,
		City:     "London",
		Venue:    "The Lamb",
		Attendees: []models.ActivityAttendee{
			{
				UserID: 1,
				IsHost: true,
				User:   models.User{ID: 1, Username: "bob", DisplayName: "Bob"},
			},
			{
				UserID: 2,
				User:   models.User{ID: 2, Username: "jane", DisplayName: "Jane", Avatar: "https://cdn/jane.png"},
			},
		},
	}

	asHost := toActivity(activity, 1)
	require.NotNil(t, asHost.Host)
	assert.Equal(t, "bob", asHost.Host.Username)
	assert.True(t, asHost.IsHost)
	assert.True(t, asHost.IsGoing)
	require.Len(t, asHost.Attendees, 2)
	assert.Equal(t, "https://cdn/jane.png", asHost.Attendees[1].Image)

	asAttendee := toActivity(activity, 2)
	assert.False(t, asAttendee.IsHost)
	assert.True(t, asAttendee.IsGoing)
	require.NotNil(t, asAttendee.Host)
	assert.Equal(t, "bob", asAttendee.Host.Username)

	asStranger := toActivity(activity, 99)
	assert.False(t, asStranger.IsHost)
	assert.False(t, asStranger.IsGoing)
}

func TestToActivityWithoutAttendees(t *testing.T) {
	out := toActivity(models.Activity{ID: "a-2", Title: "Empty"}, 1)

	assert.Nil(t, out.Host)
	assert.False(t, out.IsHost)
	assert.False(t, out.IsGoing)
	assert.Empty(t, out.Attendees)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "displayName", lowerFirst("DisplayName"))
	assert.Equal(t, "email", lowerFirst("Email"))
	assert.Equal(t, "", lowerFirst(""))
	assert.Equal(t, "a", lowerFirst("A"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bob@test.com", normalizeEmail("  Bob@Test.COM "))
	assert.Equal(t, "bob@test.com", normalizeEmail("bob@test.com"))
}

func TestValidateUsernamePattern(t *testing.T) {
	valid := []string{"bob", "Bob_42", "a1_", "twentycharslongname1"}
	for _, username := range valid {
		assert.NoError(t, validateUsernamePattern(username), username)
	}

	invalid := []string{
		"ab",                      // too short
		"thisusernameiswaytoolong", // too long
		"1bob",                    // must start with a letter
		"_bob",                    // must start with a letter
		"bob smith",               // no spaces
		"bob-smith",               // no dashes
	}
	for _, username := range invalid {
		assert.Error(t, validateUsernamePattern(username), username)
	}
}
