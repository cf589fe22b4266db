package routes

import (
	"github.com/civic-pulse/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController,
	verificationController *controllers.VerificationController, commentController *controllers.CommentController) {
	reports := protected.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
		reports.GET("/mine", reportController.GetMyReports)
		reports.GET("/:reportId", reportController.GetReport)
		reports.POST("/:reportId/confirm", reportController.ConfirmResolution)
		reports.POST("/:reportId/reopen", reportController.ReopenReport)

		reports.POST("/:reportId/verify", verificationController.VerifyReport)
		reports.GET("/:reportId/verifications", verificationController.GetReportVerifications)

		reports.POST("/:reportId/comments", commentController.AddComment)
		reports.GET("/:reportId/comments", commentController.GetComments)
	}
}
