package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/routes"
	"github.com/civic-pulse/api-go/services"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		config.Logger.Debugw("no .env file found", "error", err)
	}

	// Initialize database
	db := config.InitDB()

	// Create a new Gin router
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Initialize routes
	routes.SetupRoutes(r, db)

	// Periodic auto-close of expired verification windows
	notifier := services.NewNotifier(db)
	expiryService := services.NewExpiryService(db, notifier)

	scheduler := gocron.NewScheduler(time.UTC)
	sweepCron := os.Getenv("SWEEP_CRON")
	if sweepCron == "" {
		sweepCron = "0 * * * *" // hourly
	}
	if _, err := scheduler.Cron(sweepCron).SingletonMode().StartImmediately().Do(func() {
		closed, err := expiryService.SweepExpiredVerifications(context.Background(), time.Now())
		if err != nil {
			config.Logger.Errorw("verification sweep failed", "error", err)
			return
		}
		if closed > 0 {
			config.Logger.Infow("auto-closed expired verification windows", "closed", closed)
		}
	}); err != nil {
		config.Logger.Fatalw("failed to schedule verification sweep", "error", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	config.Logger.Infow("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		config.Logger.Fatalw("server exited", "error", err)
	}
}
