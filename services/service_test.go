package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database and migrates the full
// schema. A single connection keeps every session on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateModels(db), "failed to migrate models")
	return db
}

type notifyCall struct {
	UserID   uint
	Title    string
	Message  string
	ReportID *string
}

// fakeNotifier records every dispatch; when Fail is set it errors, which
// the services must absorb.
type fakeNotifier struct {
	Calls []notifyCall
	Fail  bool
}

func (f *fakeNotifier) Notify(_ context.Context, userID uint, title, message string, reportID *string, _ string) error {
	if f.Fail {
		return errors.New("notification provider unavailable")
	}
	f.Calls = append(f.Calls, notifyCall{UserID: userID, Title: title, Message: message, ReportID: reportID})
	return nil
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedReport creates a report plus the city/department rows it hangs off.
func seedReport(t *testing.T, db *gorm.DB, author *models.User, status string) *models.Report {
	t.Helper()

	var state models.State
	require.NoError(t, db.Where(models.State{Name: "Teststate"}).FirstOrCreate(&state).Error)
	var city models.City
	require.NoError(t, db.Where(models.City{Name: "Testville", StateID: state.ID}).FirstOrCreate(&city).Error)
	var department models.Department
	require.NoError(t, db.Where(models.Department{Name: "Water Works", CityID: city.ID}).FirstOrCreate(&department).Error)

	seq := nextSeq()
	report := &models.Report{
		ReportID:     "RPT-" + seq,
		ShareToken:   "share_" + seq,
		Title:        "Leaking pipe",
		Description:  "Water everywhere",
		Category:     "Water",
		Priority:     models.PriorityMedium,
		Status:       status,
		AuthorID:     author.ID,
		CityID:       city.ID,
		DepartmentID: department.ID,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

var seedSeq int

// nextSeq returns a short unique suffix for seeded codes and tokens.
func nextSeq() string {
	seedSeq++
	return fmt.Sprintf("%04d", seedSeq)
}

func timelineEntries(t *testing.T, db *gorm.DB, reportID uint) []models.ReportUpdate {
	t.Helper()
	var entries []models.ReportUpdate
	require.NoError(t, db.Where("report_id = ?", reportID).Order("id asc").Find(&entries).Error)
	return entries
}

func reloadReport(t *testing.T, db *gorm.DB, id uint) *models.Report {
	t.Helper()
	var report models.Report
	require.NoError(t, db.First(&report, id).Error)
	return &report
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}
