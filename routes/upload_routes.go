package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reactivities/reactivities-go/controllers"
)

func SetupUploadRoutes(rg *gin.RouterGroup, uploadController *controllers.UploadController) {
	rg.POST("/upload/avatar", uploadController.GetAvatarPresignedURL)
	rg.PUT("/account/avatar", uploadController.ConfirmAvatar)
}
