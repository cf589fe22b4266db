package models

import (
	"time"
)

// SystemActor is recorded in the timeline when a transition was not made
// by a specific user (report submission, auto-expiry sweep).
const SystemActor = "system"

// ReportUpdate is one entry in a report's status timeline. Entries are
// append-only and never mutated.
type ReportUpdate struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID  uint      `gorm:"not null;index" json:"report_id"`
	OldStatus *string   `gorm:"type:varchar(30)" json:"old_status"`
	NewStatus string    `gorm:"not null;type:varchar(30)" json:"new_status"`
	Note      string    `gorm:"type:text" json:"note"`
	UpdatedBy string    `gorm:"not null" json:"updated_by"` // user id or "system"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
