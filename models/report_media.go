package models

import (
	"time"
)

// ReportImage is one photo attached as evidence. Order preserves the
// upload sequence for galleries.
type ReportImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID  uint      `gorm:"not null;index" json:"report_id"`
	URL       string    `gorm:"not null;type:text" json:"url"`
	Order     int       `gorm:"not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ReportVideo is one video attached as evidence.
type ReportVideo struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID     uint      `gorm:"not null;index" json:"report_id"`
	URL          string    `gorm:"not null;type:text" json:"url"`
	ThumbnailURL string    `gorm:"type:text" json:"thumbnail_url"`
	Duration     int       `json:"duration"` // seconds
	Order        int       `gorm:"not null;default:0" json:"order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
