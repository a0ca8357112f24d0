package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reactivities/reactivities-go/controllers"
)

func SetupActivityRoutes(rg *gin.RouterGroup, activityController *controllers.ActivityController, commentController *controllers.CommentController) {
	rg.GET("/activities", activityController.List)
	rg.POST("/activities", activityController.Create)
	rg.GET("/activities/:id", activityController.Details)
	rg.PUT("/activities/:id", activityController.Update)
	rg.DELETE("/activities/:id", activityController.Delete)
	rg.POST("/activities/:id/attend", activityController.Attend)

	rg.GET("/activities/:id/comments", commentController.List)
	rg.POST("/activities/:id/comments", commentController.Create)
	rg.DELETE("/comments/:id", commentController.Delete)
}
