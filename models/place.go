package models

import (
	"time"

	"github.com/lib/pq"
)

// State, City, Department and Area form the administrative hierarchy a
// report is filed against. Names are unique within their parent so the
// admin onboarding flow can upsert them.

type State struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Cities    []City    `json:"cities,omitempty" gorm:"foreignKey:StateID"`
}

type City struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"not null;uniqueIndex:idx_city_state" json:"name"`
	StateID     uint         `gorm:"not null;uniqueIndex:idx_city_state" json:"state_id"`
	State       State        `json:"state,omitempty" gorm:"foreignKey:StateID"`
	CreatedAt   time.Time    `json:"created_at"`
	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:CityID"`
	Areas       []Area       `json:"areas,omitempty" gorm:"foreignKey:CityID"`
}

type Department struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_department_city" json:"name"`
	CityID    uint      `gorm:"not null;uniqueIndex:idx_department_city" json:"city_id"`
	City      City      `json:"city,omitempty" gorm:"foreignKey:CityID"`
	CreatedAt time.Time `json:"created_at"`
	Reports   []Report  `json:"reports,omitempty" gorm:"foreignKey:DepartmentID"`
}

// Area is a normalized neighbourhood within a city. Aliases keeps the raw
// address spellings that resolved to this area, so repeated lookups skip
// re-normalizing.
type Area struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"not null;uniqueIndex:idx_area_city" json:"name"`
	CityID    uint           `gorm:"not null;uniqueIndex:idx_area_city" json:"city_id"`
	City      City           `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Aliases   pq.StringArray `gorm:"type:text[]" json:"aliases"`
	CreatedAt time.Time      `json:"created_at"`
	Reports   []Report       `json:"reports,omitempty" gorm:"foreignKey:AreaID"`
}
