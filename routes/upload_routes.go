package routes

import (
	"github.com/civic-pulse/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/evidence", uploadController.GetEvidenceUploadURLs)
	}
}
