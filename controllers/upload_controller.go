package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reactivities/reactivities-go/config"
	"github.com/reactivities/reactivities-go/models"
	"github.com/reactivities/reactivities-go/utils"
	"gorm.io/gorm"
)

const maxAvatarSize = 5 * 1024 * 1024 // 5MB

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	// Create R2 client
	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetAvatarPresignedURL godoc
// @Summary Get a presigned upload URL for an avatar image
// @Tags upload
// @Accept json
// @Produce json
// @Success 200 {object} PresignedURLResponse
// @Router /upload/avatar [post]
func (uc *UploadController) GetAvatarPresignedURL(c *gin.Context) {
	claims := utils.GetUser(c)

	var req struct {
		FileName    string `json:"fileName" binding:"required"`
		ContentType string `json:"contentType" binding:"required"`
		FileSize    int64  `json:"fileSize"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	if !isValidImageType(req.ContentType) {
		abortWithError(c, http.StatusBadRequest, "Invalid file type for avatar", "")
		return
	}

	if req.FileSize > maxAvatarSize {
		abortWithError(c, http.StatusBadRequest, "File size exceeds limit", "")
		return
	}

	key := uc.generateAvatarKey(claims.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL", "")
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: presignedURL,
		FileURL:   uc.publicURL(key),
		Key:       key,
		ExpiresIn: 3600,
	})
}

// ConfirmAvatar godoc
// @Summary Confirm an uploaded avatar and attach it to the account
// @Tags upload
// @Accept json
// @Produce json
// @Success 200 {object} types.User
// @Router /account/avatar [put]
func (uc *UploadController) ConfirmAvatar(c *gin.Context) {
	claims := utils.GetUser(c)

	var req struct {
		Key string `json:"key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	// Keys are scoped per user; reject confirmations for someone else's key
	if !strings.HasPrefix(req.Key, fmt.Sprintf("avatars/%d/", claims.UserID)) {
		abortWithError(c, http.StatusForbidden, "Key does not belong to this account", "")
		return
	}

	exists, err := uc.verifyFileExists(c.Request.Context(), req.Key)
	if err != nil || !exists {
		abortWithError(c, http.StatusNotFound, "Uploaded file not found", "")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, claims.UserID).Error; err != nil {
		abortWithError(c, http.StatusUnauthorized, "User not found", "")
		return
	}

	user.Avatar = uc.publicURL(req.Key)
	if err := uc.DB.Save(&user).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update avatar", "")
		return
	}

	c.JSON(http.StatusOK, toUser(user, ""))
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

func (uc *UploadController) generateAvatarKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("avatars/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) verifyFileExists(ctx context.Context, key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.R2Client.HeadObject(ctx, input)
	if err != nil {
		return false, nil
	}

	return true, nil
}

func (uc *UploadController) publicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(uc.R2Config.PublicURL, "/"), key)
}
