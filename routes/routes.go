package routes

import (
	"github.com/civic-pulse/api-go/controllers"
	"github.com/civic-pulse/api-go/middleware"
	"github.com/civic-pulse/api-go/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Core services
	notifier := services.NewNotifier(db)
	expiryService := services.NewExpiryService(db, notifier)
	lifecycleService := services.NewLifecycleService(db, notifier)
	verificationService := services.NewVerificationService(db)
	reportService := services.NewReportService(db, notifier, expiryService)

	// Controllers
	authController := controllers.NewAuthController(db)
	reportController := controllers.NewReportController(reportService, lifecycleService)
	verificationController := controllers.NewVerificationController(db, verificationService)
	adminController := controllers.NewAdminController(db, reportService, lifecycleService, expiryService)
	commentController := controllers.NewCommentController(db)
	notificationController := controllers.NewNotificationController(db)
	metaController := controllers.NewMetaController(db)
	analyticsController := controllers.NewAnalyticsController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	uploadController := controllers.NewUploadController(db)
	validationController := controllers.NewValidationController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/login/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
		public.GET("/validate/username/:username", validationController.ValidateUsername)
		public.GET("/validate/email/:email", validationController.ValidateEmail)
		public.GET("/cities", metaController.GetCities)
		public.GET("/cities/:cityId/departments", metaController.GetDepartmentsByCity)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupReportRoutes(protected, reportController, verificationController, commentController)
		SetupNotificationRoutes(protected, notificationController)
		SetupUploadRoutes(protected, uploadController)
		SetupAdminRoutes(protected, adminController)

		protected.GET("/leaderboard", leaderboardController.GetLeaderboard)
		protected.GET("/analytics/cities/:cityId/areas", analyticsController.GetAreaReportCounts)
		protected.GET("/analytics/areas/:areaId/reports", analyticsController.GetReportsByArea)
	}
}
