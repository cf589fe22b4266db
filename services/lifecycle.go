package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/models"
	"gorm.io/gorm"
)

// statusMessages are the author-facing notification bodies per target status.
var statusMessages = map[string]string{
	models.StatusPending:             "is pending review",
	models.StatusInProgress:          "is now in progress",
	models.StatusPendingVerification: "is marked resolved and awaiting your confirmation",
	models.StatusResolved:            "has been resolved",
	models.StatusRejected:            "has been rejected as fake",
}

// UpdateStatusOptions carries the optional field updates an admin may
// attach to a status change. EstimatedCost arrives as the raw form string
// and is validated here.
type UpdateStatusOptions struct {
	Priority      string
	EstimatedCost string
}

// LifecycleService owns every report status transition and its side
// effects: timeline entries, author notifications, strikes and bans.
type LifecycleService interface {
	// UpdateReportStatus executes an admin-initiated transition. A request
	// for RESOLVED never closes the report directly; it opens the citizen
	// confirmation window (PENDING_VERIFICATION) instead.
	UpdateReportStatus(ctx context.Context, reportID uint, requestedStatus, adminNote string, actor Actor, opts UpdateStatusOptions) error

	// ConfirmResolution lets the report's author accept a fix, closing the
	// report as RESOLVED.
	ConfirmResolution(ctx context.Context, idOrCode string, actor Actor) error

	// ReopenReport lets the report's author dispute a fix, sending the
	// report back to IN_PROGRESS at HIGH priority.
	ReopenReport(ctx context.Context, idOrCode string, actor Actor, reason string) error
}

type lifecycleService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewLifecycleService(db *gorm.DB, notifier Notifier) LifecycleService {
	return &lifecycleService{db: db, notifier: notifier}
}

func (s *lifecycleService) UpdateReportStatus(ctx context.Context, reportID uint, requestedStatus, adminNote string, actor Actor, opts UpdateStatusOptions) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}
	if !models.IsValidStatus(requestedStatus) {
		return ErrInvalidStatus
	}
	if opts.Priority != "" && !models.IsValidPriority(opts.Priority) {
		return ErrInvalidPriority
	}

	var estimatedCost *float64
	if opts.EstimatedCost != "" {
		cost, err := strconv.ParseFloat(opts.EstimatedCost, 64)
		if err != nil {
			return ErrInvalidCost
		}
		estimatedCost = &cost
	}

	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	oldStatus := report.Status

	// An admin "resolve" opens the citizen confirmation window instead of
	// closing the report outright.
	targetStatus := requestedStatus
	var expiresAt *time.Time
	if requestedStatus == models.StatusResolved {
		targetStatus = models.StatusPendingVerification
		t := time.Now().Add(models.PendingVerificationWindow)
		expiresAt = &t
	}

	note := adminNote
	if note == "" {
		note = fmt.Sprintf("Status changed from %s to %s", oldStatus, targetStatus)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":                          targetStatus,
			"pending_verification_expires_at": expiresAt,
		}
		if adminNote != "" {
			updates["admin_note"] = adminNote
		}
		if opts.Priority != "" {
			updates["priority"] = opts.Priority
		}
		if estimatedCost != nil {
			updates["estimated_cost"] = estimatedCost
		}

		if err := tx.Model(&models.Report{}).Where("id = ?", report.ID).Updates(updates).Error; err != nil {
			return err
		}

		return appendTimeline(tx, report.ID, &oldStatus, targetStatus, note, strconv.FormatUint(uint64(actor.ID), 10))
	})
	if err != nil {
		return err
	}

	s.notifyAuthor(ctx, &report, targetStatus, adminNote)

	if targetStatus == models.StatusRejected {
		// Separate transaction: a crash after the transition above leaves
		// the report REJECTED with the strike not yet applied, which is
		// recoverable. The read of the new count happens inside this
		// transaction so concurrent rejections cannot race the ban check.
		if err := s.applyStrike(ctx, report.AuthorID); err != nil {
			return err
		}
	}

	return nil
}

func (s *lifecycleService) ConfirmResolution(ctx context.Context, idOrCode string, actor Actor) error {
	report, err := FindReport(s.db.WithContext(ctx), idOrCode)
	if err != nil {
		return err
	}
	if report.AuthorID != actor.ID {
		return ErrUnauthorized
	}
	if report.Status != models.StatusPendingVerification {
		return ErrInvalidState
	}

	oldStatus := report.Status
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check the status inside the transaction; if the auto-expiry
		// sweep or a concurrent confirm already moved the report, abort
		// without fabricating a timeline entry.
		result := tx.Model(&models.Report{}).Where("id = ? AND status = ?", report.ID, models.StatusPendingVerification).
			Updates(map[string]interface{}{
				"status":                          models.StatusResolved,
				"pending_verification_expires_at": nil,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidState
		}
		return appendTimeline(tx, report.ID, &oldStatus, models.StatusResolved,
			"Reporter confirmed the issue is resolved", strconv.FormatUint(uint64(actor.ID), 10))
	})
	if err != nil {
		return err
	}

	s.notifyDepartmentAdmins(ctx, report, "Resolution Confirmed",
		fmt.Sprintf("The reporter confirmed that report %s is resolved.", report.ReportID))
	return nil
}

func (s *lifecycleService) ReopenReport(ctx context.Context, idOrCode string, actor Actor, reason string) error {
	report, err := FindReport(s.db.WithContext(ctx), idOrCode)
	if err != nil {
		return err
	}
	if report.AuthorID != actor.ID {
		return ErrUnauthorized
	}
	if report.Status != models.StatusPendingVerification {
		return ErrInvalidState
	}

	if reason == "" {
		reason = "Reporter disputes the resolution"
	}

	oldStatus := report.Status
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A failed fix gets priority raised: the department already tried once.
		result := tx.Model(&models.Report{}).Where("id = ? AND status = ?", report.ID, models.StatusPendingVerification).
			Updates(map[string]interface{}{
				"status":                          models.StatusInProgress,
				"priority":                        models.PriorityHigh,
				"pending_verification_expires_at": nil,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidState
		}
		return appendTimeline(tx, report.ID, &oldStatus, models.StatusInProgress,
			reason, strconv.FormatUint(uint64(actor.ID), 10))
	})
	if err != nil {
		return err
	}

	s.notifyDepartmentAdmins(ctx, report, "Report Reopened",
		fmt.Sprintf("The reporter reopened report %s: %s", report.ReportID, reason))
	return nil
}

// applyStrike increments the author's strike count and bans at the
// threshold. The count is re-read inside the transaction so two
// concurrent rejections cannot both observe a pre-threshold value.
func (s *lifecycleService) applyStrike(ctx context.Context, authorID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", authorID).
			UpdateColumn("strike_count", gorm.Expr("strike_count + 1")).Error; err != nil {
			return err
		}

		var author models.User
		if err := tx.First(&author, authorID).Error; err != nil {
			return err
		}

		if author.StrikeCount >= models.StrikeBanThreshold && !author.IsBanned {
			if err := tx.Model(&models.User{}).Where("id = ?", authorID).
				UpdateColumn("is_banned", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *lifecycleService) notifyAuthor(ctx context.Context, report *models.Report, targetStatus, adminNote string) {
	message := fmt.Sprintf("Your report %q %s.", report.Title, statusMessages[targetStatus])
	if adminNote != "" {
		message += " Note: " + adminNote
	}
	code := report.ReportID
	if err := s.notifier.Notify(ctx, report.AuthorID, "Report Status Updated: "+targetStatus, message, &code, report.Priority); err != nil {
		config.Logger.Warnw("status notification failed",
			"report", report.ReportID,
			"error", err,
		)
	}
}

// notifyDepartmentAdmins fans a message out to every admin profile
// attached to the report's department, best-effort.
func (s *lifecycleService) notifyDepartmentAdmins(ctx context.Context, report *models.Report, title, message string) {
	var profiles []models.AdminProfile
	if err := s.db.WithContext(ctx).Where("department_id = ?", report.DepartmentID).Find(&profiles).Error; err != nil {
		config.Logger.Warnw("failed to load department admins",
			"department", report.DepartmentID,
			"error", err,
		)
		return
	}

	code := report.ReportID
	for _, profile := range profiles {
		if err := s.notifier.Notify(ctx, profile.UserID, title, message, &code, report.Priority); err != nil {
			config.Logger.Warnw("admin notification failed",
				"user", profile.UserID,
				"report", report.ReportID,
				"error", err,
			)
		}
	}
}

// appendTimeline records one audit entry for a status change.
func appendTimeline(tx *gorm.DB, reportID uint, oldStatus *string, newStatus, note, updatedBy string) error {
	return tx.Create(&models.ReportUpdate{
		ReportID:  reportID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Note:      note,
		UpdatedBy: updatedBy,
	}).Error
}

// FindReport resolves either the internal numeric id or the public
// RPT-nnnn code to a report.
func FindReport(db *gorm.DB, idOrCode string) (*models.Report, error) {
	var report models.Report
	query := db
	if id, err := strconv.ParseUint(idOrCode, 10, 64); err == nil {
		query = query.Where("id = ? OR report_id = ?", id, idOrCode)
	} else {
		query = query.Where("report_id = ?", idOrCode)
	}
	if err := query.First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}
