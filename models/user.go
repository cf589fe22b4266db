package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admin-only endpoints accept ADMIN and SUPER_ADMIN.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// StrikeBanThreshold is the number of rejected reports after which a
// reporter is banned from submitting new ones.
const StrikeBanThreshold = 3

type User struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username           string         `gorm:"unique;not null" json:"username"`
	FirstName          string         `json:"first_name"`
	LastName           string         `json:"last_name"`
	Email              string         `gorm:"unique;not null" json:"email"`
	Phone              *string        `gorm:"unique" json:"phone"`
	Password           string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	Avatar             string         `json:"avatar"`
	Role               string         `gorm:"not null;type:varchar(20);default:'USER'" json:"role"`
	StrikeCount        int            `gorm:"not null;default:0" json:"strike_count"`
	IsBanned           bool           `gorm:"not null;default:false" json:"is_banned"`
	ReputationPoints   int            `gorm:"not null;default:0" json:"reputation_points"`
	VerifiedReports    int            `gorm:"not null;default:0" json:"verified_reports"`
	EmailNotifications bool           `gorm:"not null;default:true" json:"email_notifications"`
	Reports            []Report       `json:"reports,omitempty" gorm:"foreignKey:AuthorID"`
	Verifications      []Verification `json:"verifications,omitempty" gorm:"foreignKey:VerifierID"`
	Notifications      []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
	RefreshTokens      []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user may perform admin-only operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
