package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reactivities/reactivities-go/controllers"
	"github.com/reactivities/reactivities-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	accountController := controllers.NewAccountController(db)
	activityController := controllers.NewActivityController(db)
	commentController := controllers.NewCommentController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/account/register", accountController.Register)
		public.POST("/account/login", accountController.Login)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/account", accountController.Current)

		SetupActivityRoutes(protected, activityController, commentController)
		SetupUploadRoutes(protected, uploadController)
	}
}
