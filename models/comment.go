package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	ReportID    uint           `gorm:"not null;index" json:"report_id"`
	AuthorID    uint           `gorm:"not null" json:"author_id"`
	Author      User           `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content     string         `gorm:"not null;type:text" json:"content"`
	IsPublic    bool           `gorm:"not null;default:true" json:"is_public"`
	IsModerated bool           `gorm:"not null;default:false" json:"is_moderated"` // hidden by an admin
}
