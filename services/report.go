package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/models"
	"github.com/civic-pulse/api-go/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PriorityAuto asks the server to pick a priority from the report text.
const PriorityAuto = "AUTO"

// CreateReportInput is the submission payload after HTTP binding. Media
// URLs point at already-uploaded R2 objects.
type CreateReportInput struct {
	Title          string
	Description    string
	Category       string
	CustomCategory string
	Priority       string
	CityID         uint
	DepartmentID   uint
	Address        string
	Latitude       *float64
	Longitude      *float64
	Tags           []string
	ImageURLs      []string
	VideoURLs      []string
}

// ReportService handles report submission and the read paths. Single
// report reads apply the expiry check inline so a stale report is never
// served as still pending verification.
type ReportService interface {
	CreateReport(ctx context.Context, authorID uint, input CreateReportInput) (*models.Report, error)
	GetReportByCode(ctx context.Context, idOrCode string, actor Actor) (*models.Report, error)
	GetUserReports(ctx context.Context, userID uint) ([]models.Report, error)
	GetAdminReports(ctx context.Context, actor Actor) ([]models.Report, error)
}

type reportService struct {
	db       *gorm.DB
	notifier Notifier
	expiry   ExpiryService
}

func NewReportService(db *gorm.DB, notifier Notifier, expiry ExpiryService) ReportService {
	return &reportService{db: db, notifier: notifier, expiry: expiry}
}

func (s *reportService) CreateReport(ctx context.Context, authorID uint, input CreateReportInput) (*models.Report, error) {
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if author.IsBanned {
		return nil, ErrBanned
	}

	category := input.Category
	if category == "Other" && input.CustomCategory != "" {
		category = input.CustomCategory
	}

	priority := input.Priority
	if priority == "" || priority == PriorityAuto {
		priority = utils.DetectPriority(input.Title, input.Description)
	}
	if !models.IsValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	description := input.Description
	if input.Address != "" {
		description = fmt.Sprintf("%s\n\nLocation: %s", input.Description, input.Address)
	}

	code, err := uniqueReportCode(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	report := models.Report{
		ReportID:     code,
		ShareToken:   "share_" + uuid.New().String(),
		Title:        input.Title,
		Description:  description,
		Category:     category,
		Priority:     priority,
		Status:       models.StatusPending,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		AuthorID:     authorID,
		CityID:       input.CityID,
		DepartmentID: input.DepartmentID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Address != "" {
			area, err := findOrCreateArea(tx, input.CityID, input.Address)
			if err != nil {
				// Area resolution is a nicety, never a reason to lose a report.
				config.Logger.Warnw("area resolution failed",
					"address", input.Address,
					"error", err,
				)
			} else if area != nil {
				report.AreaID = &area.ID
			}
		}

		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		for _, name := range input.Tags {
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			if err := tx.Model(&report).Association("Tags").Append(&tag); err != nil {
				return err
			}
		}

		for i, url := range input.ImageURLs {
			if err := tx.Create(&models.ReportImage{ReportID: report.ID, URL: url, Order: i}).Error; err != nil {
				return err
			}
		}
		for i, url := range input.VideoURLs {
			if err := tx.Create(&models.ReportVideo{ReportID: report.ID, URL: url, Order: i}).Error; err != nil {
				return err
			}
		}

		return appendTimeline(tx, report.ID, nil, models.StatusPending, "Report submitted", models.SystemActor)
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, authorID, "Report Submitted",
		fmt.Sprintf("ID: %s", report.ReportID), &code, priority); err != nil {
		config.Logger.Warnw("submission notification failed",
			"report", report.ReportID,
			"error", err,
		)
	}

	return &report, nil
}

func (s *reportService) GetReportByCode(ctx context.Context, idOrCode string, actor Actor) (*models.Report, error) {
	report, err := FindReport(s.db.WithContext(ctx), idOrCode)
	if err != nil {
		return nil, err
	}

	if report.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	// Lazy expiry: never serve a report as pending verification past its
	// deadline. Same transition the batch sweep applies.
	if _, err := s.expiry.ExpireIfDue(ctx, report, time.Now()); err != nil {
		return nil, err
	}

	var full models.Report
	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("City.State").
		Preload("Department").
		Preload("Area").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" asc") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" asc") }).
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		First(&full, report.ID).Error
	if err != nil {
		return nil, err
	}

	return &full, nil
}

func (s *reportService) GetUserReports(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("author_id = ?", userID).
		Order("created_at desc").
		Preload("City").
		Preload("Department").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" asc").Limit(1) }).
		Find(&reports).Error
	return reports, err
}

func (s *reportService) GetAdminReports(ctx context.Context, actor Actor) ([]models.Report, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	var profile models.AdminProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", actor.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("department_id = ?", profile.DepartmentID).
		Order("CASE priority WHEN 'CRITICAL' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END, created_at desc").
		Preload("Author").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" asc") }).
		Find(&reports).Error
	return reports, err
}

// findOrCreateArea resolves a free-form address to a normalized area,
// recording the raw spelling as an alias for future lookups.
func findOrCreateArea(tx *gorm.DB, cityID uint, address string) (*models.Area, error) {
	normalized := utils.NormalizeAreaName(address)
	if normalized == "" {
		return nil, nil
	}

	var area models.Area
	err := tx.Where("city_id = ? AND lower(name) = lower(?)", cityID, normalized).First(&area).Error
	if err == nil {
		return &area, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	area = models.Area{
		Name:    normalized,
		CityID:  cityID,
		Aliases: pq.StringArray{address},
	}
	if err := tx.Create(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// uniqueReportCode allocates a short public code. The 4-digit space can
// collide, so a handful of retries check against existing rows.
func uniqueReportCode(db *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		code := fmt.Sprintf("RPT-%d", 1000+rand.Intn(9000))
		var count int64
		if err := db.Model(&models.Report{}).Where("report_id = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a free report code")
}
