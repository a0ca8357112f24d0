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

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// List godoc
// @Summary List comments for an activity
// @Description Returns comments newest first
// @Tags comments
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {array} types.Comment
// @Router /activities/{id}/comments [get]
func (cc *CommentController) List(c *gin.Context) {
	activityID := c.Param("id")

	var activity models.Activity
	if err := cc.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Activity not found", "")
		return
	}

	var comments []models.Comment
	if err := cc.DB.Preload("User").Where("activity_id = ?", activityID).
		Order("created_at desc").Find(&comments).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load comments", "")
		return
	}

	out := make([]types.Comment, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toComment(comment))
	}

	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Add a comment to an activity
// @Description Stores the comment body for the caller and echoes the result
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} types.Comment
// @Router /activities/{id}/comments [post]
func (cc *CommentController) Create(c *gin.Context) {
	claims := utils.GetUser(c)
	activityID := c.Param("id")

	var input struct {
		Body string `json:"body" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindingError(c, err)
		return
	}

	var activity models.Activity
	if err := cc.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Activity not found", "")
		return
	}

	var user models.User
	if err := cc.DB.First(&user, claims.UserID).Error; err != nil {
		abortWithError(c, http.StatusUnauthorized, "User not found", "")
		return
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		Body:       input.Body,
		ActivityID: activityID,
		UserID:     user.ID,
		User:       user,
		CreatedAt:  time.Now(),
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create comment", "")
		return
	}

	c.JSON(http.StatusOK, toComment(comment))
}

// Delete godoc
// @Summary Delete a comment
// @Description Author-only delete
// @Tags comments
// @Param id path string true "Comment ID"
// @Router /comments/{id} [delete]
func (cc *CommentController) Delete(c *gin.Context) {
	claims := utils.GetUser(c)

	var comment models.Comment
	if err := cc.DB.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, http.StatusNotFound, "Comment not found", "")
		return
	}

	if comment.UserID != claims.UserID {
		abortWithError(c, http.StatusForbidden, "Only the author can delete this comment", "")
		return
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete comment", "")
		return
	}

	c.Status(http.StatusOK)
}
