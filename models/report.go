package models

import (
	"time"

	"gorm.io/gorm"
)

// Report status values. These are part of the API contract and must not
// change spelling.
const (
	StatusPending             = "PENDING"
	StatusInProgress          = "IN_PROGRESS"
	StatusPendingVerification = "PENDING_VERIFICATION"
	StatusResolved            = "RESOLVED"
	StatusRejected            = "REJECTED"
)

// Report priority values.
const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

// VerificationThreshold is the number of distinct citizen verifications
// that marks a report as community-verified.
const VerificationThreshold = 3

// PendingVerificationWindow is how long a report stays in
// PENDING_VERIFICATION before it is auto-closed as resolved.
const PendingVerificationWindow = 7 * 24 * time.Hour

// IsValidStatus reports whether s is one of the five report statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusPendingVerification, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// IsValidPriority reports whether p is one of the four report priorities.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	// ReportID is the short public code (e.g. RPT-4821) shown to citizens.
	ReportID   string `gorm:"unique;not null;type:varchar(20)" json:"report_id"`
	ShareToken string `gorm:"unique;not null" json:"share_token"`

	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Category    string   `gorm:"not null;type:varchar(100)" json:"category"`
	Priority    string   `gorm:"not null;type:varchar(20);default:'MEDIUM'" json:"priority"`
	Status      string   `gorm:"not null;type:varchar(30);default:'PENDING'" json:"status"`
	AdminNote   *string  `json:"admin_note"`
	Latitude    *float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   *float64 `gorm:"type:decimal(11,8)" json:"longitude"`

	IsVerified                   bool       `gorm:"not null;default:false" json:"is_verified"`
	VerificationCount            int        `gorm:"not null;default:0" json:"verification_count"`
	PendingVerificationExpiresAt *time.Time `json:"pending_verification_expires_at"`
	EstimatedCost                *float64   `gorm:"type:decimal(12,2)" json:"estimated_cost"`

	AuthorID     uint        `gorm:"not null;index" json:"author_id"`
	Author       User        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CityID       uint        `gorm:"not null;index" json:"city_id"`
	City         City        `json:"city,omitempty" gorm:"foreignKey:CityID"`
	DepartmentID uint        `gorm:"not null;index" json:"department_id"`
	Department   Department  `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	AreaID       *uint       `gorm:"index" json:"area_id"`
	Area         *Area       `json:"area,omitempty" gorm:"foreignKey:AreaID"`

	Images        []ReportImage  `json:"images,omitempty" gorm:"foreignKey:ReportID"`
	Videos        []ReportVideo  `json:"videos,omitempty" gorm:"foreignKey:ReportID"`
	Tags          []Tag          `json:"tags,omitempty" gorm:"many2many:report_tags"`
	Updates       []ReportUpdate `json:"updates,omitempty" gorm:"foreignKey:ReportID"`
	Verifications []Verification `json:"verifications,omitempty" gorm:"foreignKey:ReportID"`
	Comments      []Comment      `json:"comments,omitempty" gorm:"foreignKey:ReportID"`
}
