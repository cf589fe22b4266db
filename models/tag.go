package models

import (
	"time"
)

type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Reports   []Report  `json:"-" gorm:"many2many:report_tags"`
}
