package models

import (
	"time"
)

// AdminProfile binds an ADMIN user to the department whose reports they
// triage. One profile per user.
type AdminProfile struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint       `gorm:"unique;not null" json:"user_id"`
	User         User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	Department   Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Designation  string     `json:"designation"`
	EmployeeID   string     `json:"employee_id"`
	Phone        string     `json:"phone"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
