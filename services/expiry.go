package services

import (
	"context"
	"time"

	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/models"
	"gorm.io/gorm"
)

// ExpiryService closes verification windows the citizen never answered.
// The same transition runs from two call sites: the periodic sweep and
// the lazy check on single-report reads.
type ExpiryService interface {
	// SweepExpiredVerifications force-resolves every report whose
	// PENDING_VERIFICATION window passed before now. Returns how many
	// reports were closed.
	SweepExpiredVerifications(ctx context.Context, now time.Time) (int, error)

	// ExpireIfDue applies the same transition to a single report when its
	// window has passed. Reports whether the report was closed.
	ExpireIfDue(ctx context.Context, report *models.Report, now time.Time) (bool, error)
}

type expiryService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewExpiryService(db *gorm.DB, notifier Notifier) ExpiryService {
	return &expiryService{db: db, notifier: notifier}
}

func (s *expiryService) SweepExpiredVerifications(ctx context.Context, now time.Time) (int, error) {
	var expired []models.Report
	err := s.db.WithContext(ctx).
		Where("status = ? AND pending_verification_expires_at IS NOT NULL AND pending_verification_expires_at < ?",
			models.StatusPendingVerification, now).
		Find(&expired).Error
	if err != nil {
		return 0, err
	}

	closed := 0
	for i := range expired {
		done, err := s.ExpireIfDue(ctx, &expired[i], now)
		if err != nil {
			config.Logger.Errorw("failed to auto-close report",
				"report", expired[i].ReportID,
				"error", err,
			)
			continue
		}
		if done {
			closed++
		}
	}

	return closed, nil
}

func (s *expiryService) ExpireIfDue(ctx context.Context, report *models.Report, now time.Time) (bool, error) {
	if report.Status != models.StatusPendingVerification ||
		report.PendingVerificationExpiresAt == nil ||
		!report.PendingVerificationExpiresAt.Before(now) {
		return false, nil
	}

	oldStatus := report.Status
	expired := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check the precondition inside the transaction; a racing
		// confirm/reopen makes this a no-op instead of a double transition.
		result := tx.Model(&models.Report{}).
			Where("id = ? AND status = ? AND pending_verification_expires_at < ?",
				report.ID, models.StatusPendingVerification, now).
			Updates(map[string]interface{}{
				"status":                          models.StatusResolved,
				"pending_verification_expires_at": nil,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		expired = true
		return appendTimeline(tx, report.ID, &oldStatus, models.StatusResolved,
			"Auto-closed after pending verification window expired", models.SystemActor)
	})
	if err != nil || !expired {
		return false, err
	}

	report.Status = models.StatusResolved
	report.PendingVerificationExpiresAt = nil

	code := report.ReportID
	if err := s.notifier.Notify(ctx, report.AuthorID, "Report Auto-Closed",
		"Your report was automatically marked resolved after the 7-day confirmation window passed.",
		&code, report.Priority); err != nil {
		config.Logger.Warnw("auto-close notification failed",
			"report", report.ReportID,
			"error", err,
		)
	}

	return true, nil
}
