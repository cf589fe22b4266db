package routes

import (
	"github.com/civic-pulse/api-go/controllers"
	"github.com/civic-pulse/api-go/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(protected *gin.RouterGroup, adminController *controllers.AdminController) {
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/reports", adminController.GetReports)
		admin.PUT("/reports/:id/status", adminController.UpdateReportStatus)
		admin.POST("/sweep-verifications", adminController.SweepVerifications)
		admin.PUT("/profile", adminController.UpdateProfile)
		admin.PUT("/comments/:id/moderate", adminController.ModerateComment)
	}
}
