package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/civic-pulse/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpdateReportStatus_RequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewLifecycleService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPending)

	err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusInProgress, "",
		Actor{ID: author.ID, Role: models.RoleUser}, UpdateStatusOptions{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusPending, saved.Status)
}

func TestUpdateReportStatus_RejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	err := svc.UpdateReportStatus(context.Background(), report.ID, "CLOSED", "",
		Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Empty(t, timelineEntries(t, db, report.ID))
}

func TestUpdateReportStatus_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})
	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	err := svc.UpdateReportStatus(context.Background(), 9999, models.StatusInProgress, "",
		Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReportStatus_InvalidCost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusInProgress, "",
		Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{EstimatedCost: "lots"})
	assert.ErrorIs(t, err, ErrInvalidCost)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusPending, saved.Status)
}

// An admin resolve must open the citizen confirmation window instead of
// closing the report.
func TestUpdateReportStatus_ResolveOpensVerificationWindow(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewLifecycleService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	before := time.Now()
	err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusResolved, "fixed the pipe",
		Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{})
	require.NoError(t, err)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusPendingVerification, saved.Status)
	require.NotNil(t, saved.PendingVerificationExpiresAt)
	expectedExpiry := before.Add(models.PendingVerificationWindow)
	assert.WithinDuration(t, expectedExpiry, *saved.PendingVerificationExpiresAt, 5*time.Second)

	entries := timelineEntries(t, db, report.ID)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].OldStatus)
	assert.Equal(t, models.StatusPending, *entries[0].OldStatus)
	assert.Equal(t, models.StatusPendingVerification, entries[0].NewStatus)
	assert.Equal(t, "fixed the pipe", entries[0].Note)

	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, author.ID, notifier.Calls[0].UserID)
	require.NotNil(t, notifier.Calls[0].ReportID)
	assert.Equal(t, report.ReportID, *notifier.Calls[0].ReportID)
}

func TestUpdateReportStatus_AppliesOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusInProgress, "crew dispatched",
		Actor{ID: admin.ID, Role: admin.Role},
		UpdateStatusOptions{Priority: models.PriorityCritical, EstimatedCost: "1250.50"})
	require.NoError(t, err)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusInProgress, saved.Status)
	assert.Equal(t, models.PriorityCritical, saved.Priority)
	require.NotNil(t, saved.EstimatedCost)
	assert.InDelta(t, 1250.50, *saved.EstimatedCost, 0.001)
	assert.Nil(t, saved.PendingVerificationExpiresAt)
	require.NotNil(t, saved.AdminNote)
	assert.Equal(t, "crew dispatched", *saved.AdminNote)
}

// Three rejections ban the author; a fourth must not double-apply.
func TestUpdateReportStatus_StrikesAndBan(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	for i := 0; i < 4; i++ {
		report := seedReport(t, db, author, models.StatusPending)
		err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusRejected, "fake report",
			Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{})
		require.NoError(t, err)

		saved := reloadUser(t, db, author.ID)
		assert.Equal(t, i+1, saved.StrikeCount)
		assert.Equal(t, i+1 >= models.StrikeBanThreshold, saved.IsBanned)
	}
}

func TestUpdateReportStatus_NotifierFailureDoesNotFailTransition(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{Fail: true})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusInProgress, "",
		Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{})
	require.NoError(t, err)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusInProgress, saved.Status)
}

func TestConfirmResolution(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewLifecycleService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPendingVerification)
	expiry := time.Now().Add(models.PendingVerificationWindow)
	require.NoError(t, db.Model(report).UpdateColumn("pending_verification_expires_at", expiry).Error)

	err := svc.ConfirmResolution(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser})
	require.NoError(t, err)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusResolved, saved.Status)
	assert.Nil(t, saved.PendingVerificationExpiresAt)

	entries := timelineEntries(t, db, report.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusResolved, entries[0].NewStatus)
}

func TestConfirmResolution_OnlyAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	other := seedUser(t, db, "citizen2", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPendingVerification)

	err := svc.ConfirmResolution(context.Background(), report.ReportID, Actor{ID: other.ID, Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestConfirmResolution_WrongState(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusInProgress)

	err := svc.ConfirmResolution(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrInvalidState)
}

// A reopened report goes back to work at raised priority.
func TestReopenReport(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewLifecycleService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPendingVerification)
	expiry := time.Now().Add(models.PendingVerificationWindow)
	require.NoError(t, db.Model(report).UpdateColumn("pending_verification_expires_at", expiry).Error)

	err := svc.ReopenReport(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser}, "still leaking")
	require.NoError(t, err)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusInProgress, saved.Status)
	assert.Equal(t, models.PriorityHigh, saved.Priority)
	assert.Nil(t, saved.PendingVerificationExpiresAt)

	entries := timelineEntries(t, db, report.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "still leaking", entries[0].Note)
	assert.Equal(t, models.StatusInProgress, entries[0].NewStatus)
}

func TestReopenReport_WrongState(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusResolved)

	err := svc.ReopenReport(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser}, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

// interceptNextReportUpdate moves the report to newStatus through the
// active transaction connection right before the next reports update
// statement runs, standing in for a writer that won the race.
func interceptNextReportUpdate(t *testing.T, db *gorm.DB, reportID uint, newStatus string) {
	t.Helper()
	fired := false
	err := db.Callback().Update().Before("gorm:update").Register("race_flip", func(tx *gorm.DB) {
		if fired || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "reports" {
			return
		}
		fired = true
		if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE reports SET status = ?, pending_verification_expires_at = NULL WHERE id = ?",
			newStatus, reportID); err != nil {
			t.Errorf("concurrent status flip failed: %v", err)
		}
	})
	require.NoError(t, err)
}

// When the auto-expiry sweep closes the report first, a late confirm must
// become a no-op: no timeline entry, no admin notifications.
func TestConfirmResolution_LostRaceIsNoop(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewLifecycleService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPendingVerification)

	interceptNextReportUpdate(t, db, report.ID, models.StatusResolved)

	err := svc.ConfirmResolution(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Empty(t, timelineEntries(t, db, report.ID))
	assert.Empty(t, notifier.Calls)
	assert.Equal(t, models.StatusResolved, reloadReport(t, db, report.ID).Status)
}

func TestReopenReport_LostRaceIsNoop(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewLifecycleService(db, notifier)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPendingVerification)

	interceptNextReportUpdate(t, db, report.ID, models.StatusResolved)

	err := svc.ReopenReport(context.Background(), report.ReportID, Actor{ID: author.ID, Role: models.RoleUser}, "still leaking")
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Empty(t, timelineEntries(t, db, report.ID))
	assert.Empty(t, notifier.Calls)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusResolved, saved.Status)
	assert.Equal(t, models.PriorityMedium, saved.Priority, "priority raise must not apply")
}

func TestUpdateReportStatus_RejectsUnknownPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLifecycleService(db, &fakeNotifier{})

	author := seedUser(t, db, "citizen1", models.RoleUser)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	report := seedReport(t, db, author, models.StatusPending)

	err := svc.UpdateReportStatus(context.Background(), report.ID, models.StatusInProgress, "",
		Actor{ID: admin.ID, Role: admin.Role}, UpdateStatusOptions{Priority: "SEVERE"})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, models.StatusPending, saved.Status)
}

func TestFindReport_ByInternalIDOrCode(t *testing.T) {
	db := setupTestDB(t)

	author := seedUser(t, db, "citizen1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPending)

	byCode, err := FindReport(db, report.ReportID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, byCode.ID)

	byID, err := FindReport(db, fmt.Sprintf("%d", report.ID))
	require.NoError(t, err)
	assert.Equal(t, report.ID, byID.ID)

	_, err = FindReport(db, "RPT-0000")
	assert.ErrorIs(t, err, ErrNotFound)
}
