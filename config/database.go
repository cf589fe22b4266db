package config

import (
	"fmt"
	"os"

	"github.com/civic-pulse/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		Logger.Fatalw("failed to connect to database", "error", err)
	}

	if err := MigrateModels(db); err != nil {
		Logger.Fatalw("migration failed", "error", err)
	}

	return db
}

// MigrateModels runs AutoMigrate for every entity. Shared with the test
// helpers so the in-memory schema matches production.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.State{},
		&models.City{},
		&models.Department{},
		&models.Area{},
		&models.AdminProfile{},
		&models.Report{},
		&models.ReportImage{},
		&models.ReportVideo{},
		&models.Tag{},
		&models.ReportUpdate{},
		&models.Verification{},
		&models.Comment{},
		&models.Notification{},
	)
}
