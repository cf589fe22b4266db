package services

import (
	"context"
	"strings"
	"testing"

	"github.com/civic-pulse/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB, notifier Notifier) ReportService {
	return NewReportService(db, notifier, NewExpiryService(db, notifier))
}

func seedCityAndDepartment(t *testing.T, db *gorm.DB) (*models.City, *models.Department) {
	t.Helper()
	var state models.State
	require.NoError(t, db.Where(models.State{Name: "Teststate"}).FirstOrCreate(&state).Error)
	var city models.City
	require.NoError(t, db.Where(models.City{Name: "Testville", StateID: state.ID}).FirstOrCreate(&city).Error)
	var department models.Department
	require.NoError(t, db.Where(models.Department{Name: "Roads", CityID: city.ID}).FirstOrCreate(&department).Error)
	return &city, &department
}

func TestCreateReport(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newReportService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	city, department := seedCityAndDepartment(t, db)

	lat, lng := 17.67, 75.33
	report, err := svc.CreateReport(context.Background(), author.ID, CreateReportInput{
		Title:        "Pothole on main street",
		Description:  "Large pothole near the school",
		Category:     "Roads",
		Priority:     models.PriorityMedium,
		CityID:       city.ID,
		DepartmentID: department.ID,
		Address:      "Pandharpur 413304",
		Latitude:     &lat,
		Longitude:    &lng,
		Tags:         []string{"pothole", "school-zone"},
		ImageURLs:    []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(report.ReportID, "RPT-"))
	assert.True(t, strings.HasPrefix(report.ShareToken, "share_"))
	assert.Equal(t, models.StatusPending, report.Status)
	assert.NotNil(t, report.AreaID)

	// Initial timeline entry attributed to the system
	entries := timelineEntries(t, db, report.ID)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].OldStatus)
	assert.Equal(t, models.StatusPending, entries[0].NewStatus)
	assert.Equal(t, models.SystemActor, entries[0].UpdatedBy)

	var images []models.ReportImage
	require.NoError(t, db.Where("report_id = ?", report.ID).Order("\"order\" asc").Find(&images).Error)
	require.Len(t, images, 2)
	assert.Equal(t, 0, images[0].Order)
	assert.Equal(t, 1, images[1].Order)

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 2, tagCount)

	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, "Report Submitted", notifier.Calls[0].Title)
}

func TestCreateReport_BannedAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	require.NoError(t, db.Model(author).UpdateColumn("is_banned", true).Error)
	city, department := seedCityAndDepartment(t, db)

	_, err := svc.CreateReport(context.Background(), author.ID, CreateReportInput{
		Title:        "Anything",
		Description:  "Anything",
		Category:     "Roads",
		CityID:       city.ID,
		DepartmentID: department.ID,
	})
	assert.ErrorIs(t, err, ErrBanned)
}

func TestCreateReport_AutoPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	city, department := seedCityAndDepartment(t, db)

	report, err := svc.CreateReport(context.Background(), author.ID, CreateReportInput{
		Title:          "Gas leak near the market",
		Description:    "Strong smell since morning",
		Category:       "Other",
		CustomCategory: "Gas Supply",
		Priority:       PriorityAuto,
		CityID:         city.ID,
		DepartmentID:   department.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityCritical, report.Priority)
	assert.Equal(t, "Gas Supply", report.Category)
}

func TestCreateReport_RejectsUnknownPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	city, department := seedCityAndDepartment(t, db)

	_, err := svc.CreateReport(context.Background(), author.ID, CreateReportInput{
		Title:        "Pothole",
		Description:  "On the corner",
		Category:     "Roads",
		Priority:     "SEVERE",
		CityID:       city.ID,
		DepartmentID: department.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestGetReportByCode_AccessControl(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newReportService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	stranger := seedUser(t, db, "citizen2", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	_, err := svc.GetReportByCode(context.Background(), report.ReportID, Actor{ID: stranger.ID, Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrUnauthorized)

	fetched, err := svc.GetReportByCode(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, report.ID, fetched.ID)

	fetched, err = svc.GetReportByCode(context.Background(), report.ReportID, Actor{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	assert.Equal(t, report.ID, fetched.ID)
}

func TestGetUserReports(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	other := seedUser(t, db, "citizen2", models.RoleUser)
	seedReport(t, db, author, models.StatusPending)
	seedReport(t, db, author, models.StatusInProgress)
	seedReport(t, db, other, models.StatusPending)

	reports, err := svc.GetUserReports(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestGetAdminReports(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	low := seedReport(t, db, author, models.StatusPending)
	require.NoError(t, db.Model(low).UpdateColumn("priority", models.PriorityLow).Error)
	critical := seedReport(t, db, author, models.StatusPending)
	require.NoError(t, db.Model(critical).UpdateColumn("priority", models.PriorityCritical).Error)

	require.NoError(t, db.Create(&models.AdminProfile{
		UserID:       admin.ID,
		DepartmentID: low.DepartmentID,
		IsVerified:   true,
	}).Error)

	reports, err := svc.GetAdminReports(context.Background(), Actor{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, models.PriorityCritical, reports[0].Priority, "critical reports come first")
}

func TestGetAdminReports_RequiresProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	_, err := svc.GetAdminReports(context.Background(), Actor{ID: admin.ID, Role: admin.Role})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetAdminReports_RequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(db, &fakeNotifier{})

	user := seedUser(t, db, "citizen1", models.RoleUser)
	_, err := svc.GetAdminReports(context.Background(), Actor{ID: user.ID, Role: user.Role})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
