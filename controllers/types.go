package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/reactivities/reactivities-go/models"
	"github.com/reactivities/reactivities-go/types"
	"gorm.io/gorm"
)

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func abortWithError(c *gin.Context, statusCode int, message, details string) {
	c.AbortWithStatusJSON(statusCode, types.NewApiError(statusCode, message, details))
}

// abortWithBindingError turns gin binding failures into the field->messages
// validation body the client normalizes.
func abortWithBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrors := types.ValidationErrors{}
		for _, fieldErr := range validationErrs {
			field := lowerFirst(fieldErr.Field())
			fieldErrors[field] = append(fieldErrors[field], messageForTag(fieldErr))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, types.NewValidationError(fieldErrors))
		return
	}

	abortWithError(c, http.StatusBadRequest, err.Error(), "")
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be no more than %s characters", fieldErr.Param())
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// isUniqueViolation reports whether err is a postgres duplicate-key error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toProfile(u models.User) types.Profile {
	return types.Profile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Image:       u.Avatar,
		Bio:         u.Bio,
	}
}

func toUser(u models.User, token string) types.User {
	return types.User{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Token:       token,
		Image:       u.Avatar,
	}
}

func toComment(cm models.Comment) types.Comment {
	return types.Comment{
		ID:          cm.ID,
		CreatedAt:   cm.CreatedAt,
		Body:        cm.Body,
		Username:    cm.User.Username,
		DisplayName: cm.User.DisplayName,
		Image:       cm.User.Avatar,
	}
}

// toActivity maps an activity with preloaded attendees into the wire shape,
// computing isHost/isGoing for the viewer.
func toActivity(a models.Activity, viewerID uint) types.Activity {
	out := types.Activity{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Date:        a.Date,
		City:        a.City,
		Venue:       a.Venue,
	}

	for _, attendee := range a.Attendees {
		profile := toProfile(attendee.User)
		out.Attendees = append(out.Attendees, profile)

		if attendee.IsHost {
			host := profile
			out.Host = &host
			out.IsHost = attendee.UserID == viewerID
		}
		if attendee.UserID == viewerID {
			out.IsGoing = true
		}
	}

	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
