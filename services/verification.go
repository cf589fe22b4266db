package services

import (
	"context"
	"errors"

	"github.com/civic-pulse/api-go/models"
	"gorm.io/gorm"
)

// Reputation awards. Verifiers earn a point per vote; authors earn a
// bonus when their report crosses the verification threshold.
const (
	VerifierReward        = 1
	AuthorThresholdReward = 5
)

// VerificationService records crowd confirmations of reports and promotes
// a report to verified once enough distinct citizens have vouched for it.
type VerificationService interface {
	// VerifyReport casts the calling user's vote on a report, addressed by
	// internal id or public code. At the threshold the report is flipped
	// to verified and the author rewarded, at most once.
	VerifyReport(ctx context.Context, idOrCode string, verifierID uint) error
}

type verificationService struct {
	db *gorm.DB
}

func NewVerificationService(db *gorm.DB) VerificationService {
	return &verificationService{db: db}
}

func (s *verificationService) VerifyReport(ctx context.Context, idOrCode string, verifierID uint) error {
	report, err := FindReport(s.db.WithContext(ctx), idOrCode)
	if err != nil {
		return err
	}

	// The whole vote runs in one transaction: the duplicate check, the
	// count recompute and the threshold flip must see a consistent view,
	// otherwise two racing voters could both award the author's bonus.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Verification
		err := tx.Where("report_id = ? AND verifier_id = ?", report.ID, verifierID).First(&existing).Error
		if err == nil {
			return ErrAlreadyVerified
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		verification := models.Verification{
			ReportID:   report.ID,
			VerifierID: verifierID,
			IsVerified: true,
		}
		if err := tx.Create(&verification).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", verifierID).
			UpdateColumn("reputation_points", gorm.Expr("reputation_points + ?", VerifierReward)).Error; err != nil {
			return err
		}

		// Recompute from the authoritative row set rather than trusting
		// the cached counter.
		var count int64
		if err := tx.Model(&models.Verification{}).
			Where("report_id = ? AND is_verified = ?", report.ID, true).
			Count(&count).Error; err != nil {
			return err
		}

		// Re-read the flag inside the transaction; the pre-transaction
		// snapshot in report could be stale under concurrent votes.
		var current models.Report
		if err := tx.Select("id", "author_id", "is_verified").First(&current, report.ID).Error; err != nil {
			return err
		}

		if count >= models.VerificationThreshold && !current.IsVerified {
			if err := tx.Model(&models.Report{}).Where("id = ?", report.ID).
				Updates(map[string]interface{}{
					"verification_count": count,
					"is_verified":        true,
				}).Error; err != nil {
				return err
			}

			return tx.Model(&models.User{}).Where("id = ?", current.AuthorID).
				Updates(map[string]interface{}{
					"verified_reports":  gorm.Expr("verified_reports + 1"),
					"reputation_points": gorm.Expr("reputation_points + ?", AuthorThresholdReward),
				}).Error
		}

		return tx.Model(&models.Report{}).Where("id = ?", report.ID).
			UpdateColumn("verification_count", count).Error
	})
}
