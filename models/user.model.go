package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	OrgID               uint         `json:"org_id" gorm:"index;not null"`
	Organization        Organization `json:"-" gorm:"foreignKey:OrgID"`
	Name                string       `json:"name" gorm:"default:''"`
	Email               string       `json:"email" gorm:"unique;not null"`
	Role                string       `json:"role" gorm:"default:'LEARNER'"` // LEARNER, MANAGER, ADMIN
	Password            string       `json:"-" gorm:"not null"`
	JobTitle            string       `json:"job_title"`
	Department          string       `json:"department"`
	LastLogin           time.Time    `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int          `json:"-" gorm:"default:0"`
	IsBlocked           bool         `json:"is_blocked" gorm:"default:false"`
	IsDeleted           bool         `gorm:"default:false"`
}
