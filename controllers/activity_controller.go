package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reactivities/reactivities-go/models"
	"github.com/reactivities/reactivities-go/types"
	"github.com/reactivities/reactivities-go/utils"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB *gorm.DB
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

type activityInput struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date" binding:"required"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
}

// List godoc
// @Summary List activities
// @Description Returns all activities with attendees, ordered by date
// @Tags activities
// @Produce json
// @Success 200 {array} types.Activity
// @Router /activities [get]
func (ac *ActivityController) List(c *gin.Context) {
	claims := utils.GetUser(c)

	var activities []models.Activity
	if err := ac.DB.Preload("Attendees.User").Order("date asc").Find(&activities).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load activities", "")
		return
	}

	out := make([]types.Activity, 0, len(activities))
	for _, activity := range activities {
		out = append(out, toActivity(activity, claims.UserID))
	}

	c.JSON(http.StatusOK, out)
}

// Details godoc
// @Summary Get a single activity
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} types.Activity
// @Router /activities/{id} [get]
func (ac *ActivityController) Details(c *gin.Context) {
	claims := utils.GetUser(c)

	var activity models.Activity
	if err := ac.DB.Preload("Attendees.User").First(&activity, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Activity not found", "")
		return
	}

	c.JSON(http.StatusOK, toActivity(activity, claims.UserID))
}

// Create godoc
// @Summary Create an activity
// @Description Creates the activity and registers the caller as host
// @Tags activities
// @Accept json
// @Router /activities [post]
func (ac *ActivityController) Create(c *gin.Context) {
	claims := utils.GetUser(c)

	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindingError(c, err)
		return
	}

	if input.ID == "" {
		input.ID = uuid.NewString()
	}

	activity := models.Activity{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Date:        input.Date,
		City:        input.City,
		Venue:       input.Venue,
	}

	tx := ac.DB.Begin()

	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			abortWithError(c, http.StatusConflict, "An activity with this id already exists", "")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create activity", "")
		return
	}

	// Register the creator as host
	host := models.ActivityAttendee{
		ActivityID: activity.ID,
		UserID:     claims.UserID,
		IsHost:     true,
		DateJoined: time.Now(),
	}

	if err := tx.Create(&host).Error; err != nil {
		tx.Rollback()
		abortWithError(c, http.StatusInternalServerError, "Failed to create activity", "")
		return
	}

	tx.Commit()
	c.Status(http.StatusOK)
}

// Update godoc
// @Summary Update an activity
// @Description Host-only edit of activity fields
// @Tags activities
// @Accept json
// @Param id path string true "Activity ID"
// @Router /activities/{id} [put]
func (ac *ActivityController) Update(c *gin.Context) {
	claims := utils.GetUser(c)
	activityID := c.Param("id")

	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindingError(c, err)
		return
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Activity not found", "")
		return
	}

	if !ac.isHost(activityID, claims.UserID) {
		abortWithError(c, http.StatusForbidden, "Only the host can edit this activity", "")
		return
	}

	activity.Title = input.Title
	activity.Description = input.Description
	activity.Category = input.Category
	activity.Date = input.Date
	activity.City = input.City
	activity.Venue = input.Venue

	if err := ac.DB.Save(&activity).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update activity", "")
		return
	}

	c.Status(http.StatusOK)
}

// Delete godoc
// @Summary Delete an activity
// @Description Host-only delete; removes attendees and comments as well
// @Tags activities
// @Param id path string true "Activity ID"
// @Router /activities/{id} [delete]
func (ac *ActivityController) Delete(c *gin.Context) {
	claims := utils.GetUser(c)
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Activity not found", "")
		return
	}

	if !ac.isHost(activityID, claims.UserID) {
		abortWithError(c, http.StatusForbidden, "Only the host can delete this activity", "")
		return
	}

	tx := ac.DB.Begin()

	if err := tx.Where("activity_id = ?", activityID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		abortWithError(c, http.StatusInternalServerError, "Failed to delete activity", "")
		return
	}

	if err := tx.Where("activity_id = ?", activityID).Delete(&models.ActivityAttendee{}).Error; err != nil {
		tx.Rollback()
		abortWithError(c, http.StatusInternalServerError, "Failed to delete activity", "")
		return
	}

	if err := tx.Delete(&activity).Error; err != nil {
		tx.Rollback()
		abortWithError(c, http.StatusInternalServerError, "Failed to delete activity", "")
		return
	}

	tx.Commit()
	c.Status(http.StatusOK)
}

// Attend godoc
// @Summary Toggle attendance for an activity
// @Description Joins the activity, or leaves it if already attending
// @Tags activities
// @Param id path string true "Activity ID"
// @Router /activities/{id}/attend [post]
func (ac *ActivityController) Attend(c *gin.Context) {
	claims := utils.GetUser(c)
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Activity not found", "")
		return
	}

	var existing models.ActivityAttendee
	result := ac.DB.Where("activity_id = ? AND user_id = ?", activityID, claims.UserID).First(&existing)

	if result.Error == nil && existing.IsHost {
		abortWithError(c, http.StatusConflict, "The host cannot cancel attendance", "")
		return
	}

	tx := ac.DB.Begin()

	if result.Error == gorm.ErrRecordNotFound {
		// Join the activity
		attendee := models.ActivityAttendee{
			ActivityID: activity.ID,
			UserID:     claims.UserID,
			DateJoined: time.Now(),
		}

		if err := tx.Create(&attendee).Error; err != nil {
			tx.Rollback()
			abortWithError(c, http.StatusInternalServerError, "Failed to join activity", "")
			return
		}
	} else {
		// Leave the activity
		if err := tx.Where("activity_id = ? AND user_id = ?", activityID, claims.UserID).
			Delete(&models.ActivityAttendee{}).Error; err != nil {
			tx.Rollback()
			abortWithError(c, http.StatusInternalServerError, "Failed to cancel attendance", "")
			return
		}
	}

	tx.Commit()
	c.Status(http.StatusOK)
}

func (ac *ActivityController) isHost(activityID string, userID uint) bool {
	var attendee models.ActivityAttendee
	err := ac.DB.Where("activity_id = ? AND user_id = ? AND is_host = ?", activityID, userID, true).
		First(&attendee).Error
	return err == nil
}
