package models

import "gorm.io/gorm"

// Group is an org-scoped collection of users used for bulk assignment
type Group struct {
	gorm.Model
	OrgID     uint   `json:"org_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	IsDeleted bool   `gorm:"default:false"`
}

type GroupMember struct {
	gorm.Model
	GroupID   uint `json:"group_id" gorm:"index;not null;uniqueIndex:idx_group_user"`
	UserID    uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_group_user"`
	IsDeleted bool `gorm:"default:false"`
}
