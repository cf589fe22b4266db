package routes

import (
	"github.com/civic-pulse/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("/recent", notificationController.GetRecent)
		notifications.GET("", notificationController.GetAll)
		notifications.PUT("/:id/read", notificationController.MarkAsRead)
		notifications.PUT("/read-all", notificationController.MarkAllAsRead)
	}
}
