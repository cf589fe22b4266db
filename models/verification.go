package models

import (
	"time"
)

// Verification is one citizen's confirmation that a report is genuine.
// The composite unique index enforces one vote per user per report at the
// database level, not just in application logic.
type Verification struct {
	ID         uint      `gorm:"column:verification_id;primaryKey;autoIncrement" json:"id"`
	ReportID   uint      `gorm:"column:report_id;not null;uniqueIndex:idx_report_verifier" json:"report_id"`
	VerifierID uint      `gorm:"column:verifier_id;not null;uniqueIndex:idx_report_verifier" json:"verifier_id"`
	IsVerified bool      `gorm:"column:is_verified;not null;default:true" json:"is_verified"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Verifier User   `gorm:"foreignKey:VerifierID" json:"verifier,omitempty"`
	Report   Report `gorm:"foreignKey:ReportID" json:"-"`
}
